package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/sagrop_cms/internal/models"
)

// articleLockKey 是 articles 表在 PostgreSQL 上的事务级咨询锁键
const articleLockKey int64 = 0x61727469636c6573

// idMove 描述一次主键改写
type idMove struct {
	From int64
	To   int64
}

// planRenumber 为升序排列的 ids 生成改写计划，使其成为 1..N 的连续序列。
// 目标计数器每一步都递增；已经在正确位置上的 ID 不产生写操作。
func planRenumber(ids []int64) []idMove {
	var moves []idMove
	for i, id := range ids {
		target := int64(i + 1)
		if id == target {
			continue
		}
		moves = append(moves, idMove{From: id, To: target})
	}
	return moves
}

// lockArticles 在当前事务内独占 articles 表的变更权。
// SQLite 的写事务本身就是排他的，无需额外加锁。
func lockArticles(tx *gorm.DB) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	return tx.Exec("SELECT pg_advisory_xact_lock(?)", articleLockKey).Error
}

// renumberArticles 在事务 tx 内把全部文章 ID 压缩为 1..N，保持原有相对顺序。
// 按旧 ID 升序处理时，目标 ID 要么已被前面的行腾出，要么从未被占用，因此不会冲突。
// 任意一条更新失败即中止并返回错误，由外层事务回滚。
func renumberArticles(tx *gorm.DB) ([]idMove, error) {
	var ids []int64
	if err := tx.Model(&models.Article{}).Order("id ASC").Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("reading article ids: %w", err)
	}

	moves := planRenumber(ids)
	for _, mv := range moves {
		if err := tx.Exec("UPDATE articles SET id = ? WHERE id = ?", mv.To, mv.From).Error; err != nil {
			return nil, fmt.Errorf("renumbering article %d to %d: %w", mv.From, mv.To, err)
		}
	}
	return moves, nil
}

// finalID 返回 id 在改写计划执行后的新值
func finalID(moves []idMove, id int64) int64 {
	for _, mv := range moves {
		if mv.From == id {
			return mv.To
		}
	}
	return id
}
