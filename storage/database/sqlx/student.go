package sqlxrepos

import (
	"context"
	"strings"

	"github.com/jamespares/chinaprof/core"
	"github.com/jamespares/chinaprof/core/student"
)

const studentColumns = "id, name, class, class_id, dob, avatar_url"

var studentOrdering = map[string]string{
	"id":    "id",
	"name":  "name",
	"class": "class",
	"dob":   "dob",
}

type studentRepository struct {
	repository
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(exec core.DBExecutor) *studentRepository {
	return &studentRepository{repository{exec: exec}}
}

func (repo studentRepository) CreateStudent(ctx context.Context, s student.Student, exec ...core.DBExecutor) (student.Student, error) {
	err := get(ctx, repo.getExec(exec), &s.ID,
		"INSERT INTO students (name, class, class_id, dob, avatar_url) VALUES (?, ?, ?, ?, ?) RETURNING id",
		s.Name, s.Class, s.ClassID, s.DOB, s.AvatarURL)
	if err != nil {
		return student.Student{}, trapConstraintErr(err, "inserting student")
	}
	return s, nil
}

func (repo studentRepository) QueryStudents(ctx context.Context, filter *student.QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]student.Student, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter != nil {
		if filter.Search != "" {
			val := "%" + strings.ToLower(filter.Search) + "%"
			where = append(where, "(LOWER(name) LIKE ? OR LOWER(class) LIKE ?)")
			args = append(args, val, val)
		}
		if filter.Class != "" {
			where = append(where, "class = ?")
			args = append(args, filter.Class)
		}
		if filter.ClassID != 0 {
			where = append(where, "class_id = ?")
			args = append(args, filter.ClassID)
		}
	}

	query := "SELECT " + studentColumns + " FROM students"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY " + core.OrderByClause(ordering, studentOrdering, "name ASC") + ", id ASC"

	students := make([]student.Student, 0)
	if err := selectAll(ctx, repo.getExec(exec), &students, query, args...); err != nil {
		return nil, trapConstraintErr(err, "querying students")
	}
	return students, nil
}

func (repo studentRepository) GetStudent(ctx context.Context, id int, exec ...core.DBExecutor) (student.Student, error) {
	var s student.Student
	if err := get(ctx, repo.getExec(exec), &s, "SELECT "+studentColumns+" FROM students WHERE id = ?", id); err != nil {
		return student.Student{}, trapNoRowsErr(err, student.ErrNotFound, "finding student")
	}
	return s, nil
}

func (repo studentRepository) UpdateStudent(ctx context.Context, s student.Student, exec ...core.DBExecutor) (student.Student, error) {
	err := execOne(ctx, repo.getExec(exec), student.ErrNotFound, "updating student",
		"UPDATE students SET name = ?, class = ?, class_id = ?, dob = ?, avatar_url = ? WHERE id = ?",
		s.Name, s.Class, s.ClassID, s.DOB, s.AvatarURL, s.ID)
	if err != nil {
		return student.Student{}, err
	}
	return s, nil
}

func (repo studentRepository) DeleteStudent(ctx context.Context, id int, exec ...core.DBExecutor) error {
	return execOne(ctx, repo.getExec(exec), student.ErrNotFound, "deleting student", "DELETE FROM students WHERE id = ?", id)
}
