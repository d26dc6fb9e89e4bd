package sqlxrepos_test

import "github.com/volatiletech/null/v8"

func nullInt(i int) null.Int {
	return null.IntFrom(i)
}

func nullString(s string) null.String {
	return null.StringFrom(s)
}
