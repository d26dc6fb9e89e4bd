package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null/v8"

	"github.com/jamespares/chinaprof/core"
	"github.com/jamespares/chinaprof/core/student"
	"github.com/jamespares/chinaprof/tests"
)

func Test_studentApi_create(t *testing.T) {
	app := newTestApp(t)
	cls := testutil.CreateClass(t, app.classRepo, "Year 7A", 7)

	tests := []httpTest{
		{
			name:     "valid",
			body:     []byte(`{"name":" Amy ","class":"7A","dob":"2012-01-05"}`),
			wantCode: http.StatusCreated,
			wantData: marchallObj(t, student.Student{ID: 1, Name: "Amy", Class: "7A", DOB: core.MustParseDate("2012-01-05")}),
		},
		{
			name:     "with class id",
			body:     []byte(`{"name":"Bo","class":"7A","class_id":1,"dob":"2011-06-01","avatar_url":"https://example.com/bo.png"}`),
			wantCode: http.StatusCreated,
			wantData: marchallObj(t, student.Student{
				ID:        2,
				Name:      "Bo",
				Class:     "7A",
				ClassID:   null.IntFrom(cls.ID),
				DOB:       core.MustParseDate("2011-06-01"),
				AvatarURL: null.StringFrom("https://example.com/bo.png"),
			}),
		},
		{
			name:     "missing fields",
			body:     []byte(`{"name":"  "}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"name":"this field is required","class":"this field is required","dob":"this field is required"}`),
		},
		{
			name:     "invalid dob",
			body:     []byte(`{"name":"Amy","class":"7A","dob":"2012-13-01"}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown class id",
			body:     []byte(`{"name":"Cy","class":"7A","class_id":99,"dob":"2012-01-05"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: core.ErrInvalidReference.Error()}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/students", tt.body)
			app.do(req, rec)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_studentApi_query(t *testing.T) {
	app := newTestApp(t)
	amy := testutil.CreateStudent(t, app.studentRepo, "Amy", "7A", "2012-01-05")
	bo := testutil.CreateStudent(t, app.studentRepo, "Bo", "7A", "2011-06-01")
	cy := testutil.CreateStudent(t, app.studentRepo, "Cy", "7B", "2012-03-09")

	tests := []httpTest{
		{name: "all", path: "/v1/students", wantCode: http.StatusOK, wantData: marchallObj(t, []student.Student{amy, bo, cy})},
		{name: "by class", path: "/v1/students?class=7A&ordering=-name", wantCode: http.StatusOK, wantData: marchallObj(t, []student.Student{bo, amy})},
		{name: "by dob", path: "/v1/students?ordering=-dob", wantCode: http.StatusOK, wantData: marchallObj(t, []student.Student{cy, amy, bo})},
		{name: "search", path: "/v1/students?search=C", wantCode: http.StatusOK, wantData: marchallObj(t, []student.Student{cy})},
		{name: "no match", path: "/v1/students?class=9Z", wantCode: http.StatusOK, wantData: []byte(`[]`)},
		{name: "bad class id", path: "/v1/students?class_id=abc", wantCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodGet, tt.path)
			app.do(req, rec)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_studentApi_detail(t *testing.T) {
	app := newTestApp(t)
	amy := testutil.CreateStudent(t, app.studentRepo, "Amy", "7A", "2012-01-05")
	notFound := marchallObj(t, httpErr{Error: student.ErrNotFound.Error()})

	updated := amy
	updated.Class = "8A"
	updated.AvatarURL = null.StringFrom("https://example.com/amy.png")

	tests := []httpTest{
		{name: "retrieve", method: http.MethodGet, path: "/v1/students/1", wantCode: http.StatusOK, wantData: marchallObj(t, amy)},
		{name: "retrieve unknown", method: http.MethodGet, path: "/v1/students/42", wantCode: http.StatusNotFound, wantData: notFound},
		{name: "retrieve bad id", method: http.MethodGet, path: "/v1/students/abc", wantCode: http.StatusNotFound},
		{
			name:     "partial update",
			method:   http.MethodPatch,
			path:     "/v1/students/1",
			body:     []byte(`{"class":"8A","avatar_url":"https://example.com/amy.png"}`),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, updated),
		},
		{
			name:     "empty dob",
			method:   http.MethodPut,
			path:     "/v1/students/1",
			body:     []byte(`{"dob":""}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"dob":"this field cannot be empty"}`),
		},
		{name: "update unknown", method: http.MethodPut, path: "/v1/students/42", body: []byte(`{"name":"X"}`), wantCode: http.StatusNotFound, wantData: notFound},
		{name: "delete", method: http.MethodDelete, path: "/v1/students/1", wantCode: http.StatusNoContent},
		{name: "deleted", method: http.MethodGet, path: "/v1/students/1", wantCode: http.StatusNotFound, wantData: notFound},
		{name: "delete unknown", method: http.MethodDelete, path: "/v1/students/1", wantCode: http.StatusNotFound, wantData: notFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.do(req, rec)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_home(t *testing.T) {
	app := newTestApp(t)
	req, rec := newRequest(http.MethodGet, "/")
	app.do(req, rec)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to ChinaProf API!", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}
