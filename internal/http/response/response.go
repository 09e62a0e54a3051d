package response

import (
	"net/http"

	"github.com/hayuwidyas/commerce-api/internal/result"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
type Response struct {
	StatusCode int         `json:"status_code"` // 业务状态码
	Msg        string      `json:"msg"`         // 提示消息
	Data       interface{} `json:"data"`        // 数据内容
	Meta       *Meta       `json:"meta,omitempty"`
}

// Meta 数据来源元信息：客户端据此渲染"数据可能过期"提示
type Meta struct {
	Provenance string `json:"provenance"` // cache / remote / fallback
	Stale      bool   `json:"stale"`      // 来源非远端时为真
}

// MetaFromSnapshot 从成功快照提取元信息
func MetaFromSnapshot(provenance result.Provenance) *Meta {
	return &Meta{
		Provenance: string(provenance),
		Stale:      provenance != result.ProvenanceRemote,
	}
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		StatusCode: CodeOK,
		Msg:        "success",
		Data:       data,
	})
}

// SuccessWithMeta 成功响应（带来源元信息）
func SuccessWithMeta(c *gin.Context, data interface{}, meta *Meta) {
	c.JSON(http.StatusOK, Response{
		StatusCode: CodeOK,
		Msg:        "success",
		Data:       data,
		Meta:       meta,
	})
}

// Error 错误响应
func Error(c *gin.Context, statusCode int, msg string) {
	c.JSON(http.StatusOK, Response{
		StatusCode: statusCode,
		Msg:        msg,
		Data:       attachRequestID(c, nil),
	})
}

// ErrorFromSnapshot 把错误快照映射为错误响应
func ErrorFromSnapshot(c *gin.Context, snapErr *result.Error) {
	if snapErr == nil {
		Error(c, CodeInternal, "unknown error")
		return
	}
	Error(c, codeForKind(snapErr.Kind), snapErr.Message)
}

// NotFound 404响应
func NotFound(c *gin.Context, msg string) {
	Error(c, CodeNotFound, msg)
}

// Unauthorized 401响应
func Unauthorized(c *gin.Context, msg string) {
	Error(c, CodeUnauthorized, msg)
}

// BadRequest 400响应
func BadRequest(c *gin.Context, msg string) {
	Error(c, CodeBadRequest, msg)
}

func codeForKind(kind result.ErrorKind) int {
	switch kind {
	case result.KindNotFound:
		return CodeNotFound
	case result.KindTimeout:
		return CodeTimeout
	case result.KindNetworkUnreachable:
		return CodeUnreachable
	default:
		return CodeInternal
	}
}

func attachRequestID(c *gin.Context, data interface{}) interface{} {
	requestID := ""
	if c != nil {
		if value, ok := c.Get("request_id"); ok {
			if id, ok := value.(string); ok {
				requestID = id
			}
		}
	}
	if requestID == "" {
		return data
	}
	if data == nil {
		return gin.H{"request_id": requestID}
	}
	return data
}
