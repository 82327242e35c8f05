// Package repository 提供数据访问层
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/paiban/paiban/pkg/model"
)

// DepartmentRepository 部门仓储
type DepartmentRepository struct {
	db DB
}

// NewDepartmentRepository 创建部门仓储
func NewDepartmentRepository(db DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

// Create 创建部门
func (r *DepartmentRepository) Create(ctx context.Context, dept *model.Department) error {
	now := time.Now()
	dept.CreatedAt = now
	dept.UpdatedAt = now

	query := `INSERT INTO departments (name, created_at, updated_at) VALUES ($1, $2, $3) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, dept.Name, dept.CreatedAt, dept.UpdatedAt).Scan(&dept.ID); err != nil {
		return fmt.Errorf("创建部门失败: %w", err)
	}
	return nil
}

// GetByID 根据ID获取部门
func (r *DepartmentRepository) GetByID(ctx context.Context, id model.ID) (*model.Department, error) {
	query := `SELECT id, name, created_at, updated_at FROM departments WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	d := &model.Department{}
	err := row.Scan(&d.ID, &d.Name, &d.CreatedAt, &d.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("查询部门失败: %w", err)
	}
	return d, nil
}
