package postgres

import (
	"context"
	"database/sql"
	"time"

	"daanbridge-backend/internal/domain"
	"daanbridge-backend/internal/repository"
)

type projectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) repository.ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	query := `INSERT INTO projects (ngo_id, title, description, category, goal_amount, raised_amount, status, image_url, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, 0, $6, $7, $8, $9) RETURNING id`
	now := time.Now().Format("2006-01-02")
	if project.Status == "" {
		project.Status = domain.ProjectStatusActive
	}
	return r.db.QueryRowContext(ctx, query, project.NGOID, project.Title, project.Description, project.Category, project.GoalAmount, project.Status, project.ImageURL, now, now).Scan(&project.ID)
}

func (r *projectRepository) GetByID(ctx context.Context, id int32) (*domain.Project, error) {
	query := `SELECT id, ngo_id, title, COALESCE(description, ''), COALESCE(category, ''), goal_amount, raised_amount, status, COALESCE(image_url, ''), created_on, updated_on
	          FROM projects WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var p domain.Project
	var createdOn, updatedOn time.Time
	err := row.Scan(&p.ID, &p.NGOID, &p.Title, &p.Description, &p.Category, &p.GoalAmount, &p.RaisedAmount, &p.Status, &p.ImageURL, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	p.CreatedOn = createdOn.Format("2006-01-02")
	p.UpdatedOn = updatedOn.Format("2006-01-02")
	return &p, nil
}

func (r *projectRepository) List(ctx context.Context, category string, page, pageSize int32) ([]domain.Project, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT id, ngo_id, title, COALESCE(description, ''), COALESCE(category, ''), goal_amount, raised_amount, status, COALESCE(image_url, ''), created_on, updated_on
	          FROM projects WHERE status = 'ACTIVE' AND ($1 = '' OR category = $1)
	          ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, category, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	projects, err := scanProjects(rows)
	if err != nil {
		return nil, 0, err
	}

	var count int32
	countQuery := `SELECT count(*) FROM projects WHERE status = 'ACTIVE' AND ($1 = '' OR category = $1)`
	if err := r.db.QueryRowContext(ctx, countQuery, category).Scan(&count); err != nil {
		return nil, 0, err
	}
	return projects, count, nil
}

func (r *projectRepository) ListByNGO(ctx context.Context, ngoID int32) ([]domain.Project, error) {
	query := `SELECT id, ngo_id, title, COALESCE(description, ''), COALESCE(category, ''), goal_amount, raised_amount, status, COALESCE(image_url, ''), created_on, updated_on
	          FROM projects WHERE ngo_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, ngoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProjects(rows)
}

func (r *projectRepository) Update(ctx context.Context, project *domain.Project) error {
	query := `UPDATE projects SET title = $1, description = $2, category = $3, goal_amount = $4, status = $5, image_url = $6, updated_on = $7 WHERE id = $8`
	now := time.Now().Format("2006-01-02")
	_, err := r.db.ExecContext(ctx, query, project.Title, project.Description, project.Category, project.GoalAmount, project.Status, project.ImageURL, now, project.ID)
	return err
}

func (r *projectRepository) AddRaisedAmount(ctx context.Context, projectID int32, amount int64) error {
	query := `UPDATE projects SET raised_amount = raised_amount + $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, amount, projectID)
	return err
}

func (r *projectRepository) CreateUpdate(ctx context.Context, update *domain.ProjectUpdate) error {
	query := `INSERT INTO project_updates (project_id, title, body, image_url, posted_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	now := time.Now().Format("2006-01-02")
	return r.db.QueryRowContext(ctx, query, update.ProjectID, update.Title, update.Body, update.ImageURL, now).Scan(&update.ID)
}

func (r *projectRepository) ListUpdates(ctx context.Context, projectID int32) ([]domain.ProjectUpdate, error) {
	query := `SELECT id, project_id, title, body, COALESCE(image_url, ''), posted_on
	          FROM project_updates WHERE project_id = $1 ORDER BY posted_on DESC`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var updates []domain.ProjectUpdate
	for rows.Next() {
		var u domain.ProjectUpdate
		var postedOn time.Time
		if err := rows.Scan(&u.ID, &u.ProjectID, &u.Title, &u.Body, &u.ImageURL, &postedOn); err != nil {
			return nil, err
		}
		u.PostedOn = postedOn.Format("2006-01-02")
		updates = append(updates, u)
	}
	return updates, rows.Err()
}

func scanProjects(rows *sql.Rows) ([]domain.Project, error) {
	var projects []domain.Project
	for rows.Next() {
		var p domain.Project
		var createdOn, updatedOn time.Time
		if err := rows.Scan(&p.ID, &p.NGOID, &p.Title, &p.Description, &p.Category, &p.GoalAmount, &p.RaisedAmount, &p.Status, &p.ImageURL, &createdOn, &updatedOn); err != nil {
			return nil, err
		}
		p.CreatedOn = createdOn.Format("2006-01-02")
		p.UpdatedOn = updatedOn.Format("2006-01-02")
		projects = append(projects, p)
	}
	return projects, rows.Err()
}
