package public

import (
	"strings"

	"github.com/hayuwidyas/commerce-api/internal/result"

	"github.com/gin-gonic/gin"
)

// getUserID 取出请求身份：nil 表示游客
func getUserID(c *gin.Context) *string {
	value, ok := c.Get("user_id")
	if !ok {
		return nil
	}
	userID, ok := value.(string)
	if !ok || strings.TrimSpace(userID) == "" {
		return nil
	}
	return &userID
}

// resolveSnapshot 消费快照序列并返回对外应答的最终快照。
// 成功快照覆盖先前的一切（远端成功覆盖缓存成功）；
// 序列以错误收尾但此前有过成功快照时，保留最后一次成功（数据标记为可能过期）
func resolveSnapshot[T any](ch <-chan result.Snapshot[T]) result.Snapshot[T] {
	var lastSuccess *result.Snapshot[T]
	var lastError *result.Snapshot[T]
	for snap := range ch {
		switch {
		case snap.IsSuccess():
			s := snap
			lastSuccess = &s
		case snap.State == result.StateError:
			s := snap
			lastError = &s
		}
	}
	if lastSuccess != nil {
		return *lastSuccess
	}
	if lastError != nil {
		return *lastError
	}
	return result.Failure[T](result.KindServerError, "request canceled")
}
