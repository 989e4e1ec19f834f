package utils

import (
	"fmt"
	"time"
)

// DBDateTimeLayout DATETIME 컬럼 저장 형식 (UTC, 사전순 정렬 가능)
const DBDateTimeLayout = "2006-01-02 15:04:05"

// NowDB 현재 UTC 시각을 DB 저장 형식 문자열로 반환한다.
func NowDB() string {
	return time.Now().UTC().Format(DBDateTimeLayout)
}

// FormatDB DB 저장 형식으로 포맷한다.
func FormatDB(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(DBDateTimeLayout)
}

// ParseDBDate DB에서 읽은 시각 문자열을 파싱한다.
func ParseDBDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("empty time string")
	}

	if ts, err := time.ParseInLocation(DBDateTimeLayout, value, time.UTC); err == nil {
		return ts, nil
	}

	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts.UTC(), nil
	}

	return time.Time{}, fmt.Errorf("unsupported db time format: %s", value)
}
