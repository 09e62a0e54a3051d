package repository

import "gorm.io/gorm"

// applyPagination 应用分页参数，统一处理非法页码与偏移量。
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize
	return query.Limit(pageSize).Offset(offset)
}

// ownerScope 按归属过滤：userID 为空表示游客（user_id IS NULL）
func ownerScope(query *gorm.DB, userID *string) *gorm.DB {
	if userID == nil {
		return query.Where("user_id IS NULL")
	}
	return query.Where("user_id = ?", *userID)
}
