package services

import (
	"strings"
)

// 페이징 한계값
const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// PageQuery 제품 목록 조회 파라미터. 모든 필드는 선택적이며,
// Normalized()가 정렬 키/방향 및 페이징 값을 규칙에 맞게 정규화한다.
type PageQuery struct {
	Search   string
	MinPrice *float64
	MaxPrice *float64
	SortKey  string
	SortDir  string
	PageNum  int
	PageSize int
}

// sortColumns 허용된 정렬 키와 실제 컬럼 매핑
var sortColumns = map[string]string{
	"price":     "price",
	"name":      "name",
	"createdat": "created_at",
}

// Normalized 정규화된 복사본을 반환한다.
// 정렬 키는 화이트리스트에 없으면 createdat, 방향은 desc가 아니면 asc.
// pageNum < 1 → 1, pageSize < 1 → 기본값 10, 상한 100.
func (q PageQuery) Normalized() PageQuery {
	n := q

	n.Search = strings.TrimSpace(n.Search)

	n.SortKey = strings.ToLower(strings.TrimSpace(n.SortKey))
	if _, ok := sortColumns[n.SortKey]; !ok {
		n.SortKey = "createdat"
	}

	n.SortDir = strings.ToLower(strings.TrimSpace(n.SortDir))
	if n.SortDir != "desc" {
		n.SortDir = "asc"
	}

	if n.PageNum < 1 {
		n.PageNum = 1
	}
	if n.PageSize < 1 {
		n.PageSize = defaultPageSize
	}
	if n.PageSize > maxPageSize {
		n.PageSize = maxPageSize
	}

	return n
}

// Offset 건너뛸 행 수
func (q PageQuery) Offset() int {
	return (q.PageNum - 1) * q.PageSize
}

// filterClause 정규화된 쿼리에서 WHERE 절 조건과 바인딩 인자를 만든다.
// 검색어는 SKU 또는 이름의 부분 문자열 매칭(OR), 가격 조건은 AND로 결합된다.
func (q PageQuery) filterClause() (string, []any) {
	var sb strings.Builder
	args := make([]any, 0, 4)

	if q.Search != "" {
		pattern := "%" + escapeLike(q.Search) + "%"
		sb.WriteString(` AND (sku LIKE ? ESCAPE '\' OR name LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern)
	}

	if q.MinPrice != nil {
		sb.WriteString(" AND price >= ?")
		args = append(args, *q.MinPrice)
	}

	if q.MaxPrice != nil {
		sb.WriteString(" AND price <= ?")
		args = append(args, *q.MaxPrice)
	}

	return sb.String(), args
}

// orderClause 정규화된 쿼리에서 ORDER BY 절을 만든다.
// 재현 가능한 페이징을 위해 항상 id를 마지막 정렬 키로 둔다.
func (q PageQuery) orderClause() string {
	column := sortColumns[q.SortKey]
	direction := "ASC"
	if q.SortDir == "desc" {
		direction = "DESC"
	}
	return " ORDER BY " + column + " " + direction + ", id ASC"
}

// escapeLike LIKE 메타문자를 이스케이프해서 순수 부분 문자열 매칭을 보장한다.
func escapeLike(term string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`%`, `\%`,
		`_`, `\_`,
	)
	return replacer.Replace(term)
}
