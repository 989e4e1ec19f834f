// Package docs 는 swag이 생성하는 Swagger 문서 등록을 담당한다.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "email": "support@example.com"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/products": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["제품"],
                "summary": "제품 목록 조회",
                "parameters": [
                    {"type": "string", "name": "q", "in": "query", "description": "SKU 또는 이름 부분 검색"},
                    {"type": "number", "name": "minPrice", "in": "query", "description": "최소 가격"},
                    {"type": "number", "name": "maxPrice", "in": "query", "description": "최대 가격"},
                    {"type": "string", "name": "sort", "in": "query", "description": "정렬 키 (price, name, createdAt)"},
                    {"type": "string", "name": "dir", "in": "query", "description": "정렬 방향 (asc, desc)"},
                    {"type": "integer", "name": "pageNum", "in": "query", "description": "페이지 번호"},
                    {"type": "integer", "name": "pageSize", "in": "query", "description": "페이지 크기"}
                ],
                "responses": {"200": {"description": "조회 성공"}, "401": {"description": "인증 필요"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["제품"],
                "summary": "제품 생성",
                "responses": {
                    "201": {"description": "생성 성공"},
                    "400": {"description": "잘못된 요청"},
                    "409": {"description": "중복 SKU"}
                }
            }
        },
        "/api/products/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["제품"],
                "summary": "제품 상세 조회",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "조회 성공"}, "404": {"description": "제품 없음"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["제품"],
                "summary": "제품 수정",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "수정 성공"},
                    "404": {"description": "제품 없음"},
                    "409": {"description": "중복 SKU"}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["제품"],
                "summary": "제품 삭제",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "삭제 성공"}, "404": {"description": "제품 없음"}}
            }
        },
        "/api/products/{id}/movements": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["제품"],
                "summary": "재고 변동 이력 조회",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "조회 성공"}, "404": {"description": "제품 없음"}}
            }
        },
        "/api/users/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["사용자"],
                "summary": "회원가입",
                "responses": {
                    "201": {"description": "가입 성공"},
                    "400": {"description": "잘못된 요청"},
                    "409": {"description": "이미 사용 중인 이메일"}
                }
            }
        },
        "/api/users/signin": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["사용자"],
                "summary": "로그인",
                "responses": {
                    "200": {"description": "로그인 성공"},
                    "401": {"description": "인증 실패"},
                    "404": {"description": "사용자 없음"}
                }
            }
        },
        "/api/users/profile": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["사용자"],
                "summary": "프로필 조회",
                "responses": {"200": {"description": "조회 성공"}, "404": {"description": "사용자 없음"}}
            }
        },
        "/api/dashboard/stats": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["대시보드"],
                "summary": "재고 현황 통계",
                "responses": {"200": {"description": "조회 성공"}}
            }
        },
        "/api/dashboard/movements": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["대시보드"],
                "summary": "최근 재고 변동 내역",
                "responses": {"200": {"description": "조회 성공"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "JWT 토큰을 입력하세요. 형식: Bearer {token}"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Inventory Management API",
	Description:      "제품 재고 관리 REST 백엔드",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
