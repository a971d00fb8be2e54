package dao

import "database/sql"

type NullInt64 struct {
	sql.NullInt64
}

// NewNullInt64 treats 0 as NULL, ids start at 1
func NewNullInt64(val int64) NullInt64 {
	return NullInt64{sql.NullInt64{Int64: val, Valid: val != 0}}
}

// AsInt if NULL, returns 0
func (ni NullInt64) AsInt() int64 {
	if !ni.NullInt64.Valid {
		return 0
	}
	return ni.NullInt64.Int64
}
