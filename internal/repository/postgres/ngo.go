package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"

	"daanbridge-backend/internal/domain"
	"daanbridge-backend/internal/repository"
)

type ngoRepository struct {
	db *sql.DB
}

func NewNGORepository(db *sql.DB) repository.NGORepository {
	return &ngoRepository{db: db}
}

func (r *ngoRepository) Create(ctx context.Context, ngo *domain.NGO) error {
	query := `INSERT INTO ngos (user_id, name, registration_number, description, website, contact_email, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	now := time.Now().Format("2006-01-02")
	return r.db.QueryRowContext(ctx, query, ngo.UserID, ngo.Name, ngo.RegistrationNumber, ngo.Description, ngo.Website, ngo.ContactEmail, now, now).Scan(&ngo.ID)
}

func (r *ngoRepository) GetByID(ctx context.Context, id int32) (*domain.NGO, error) {
	query := `SELECT id, user_id, name, registration_number, COALESCE(description, ''), COALESCE(website, ''), contact_email, created_on, updated_on
	          FROM ngos WHERE id = $1`
	return r.scanNGO(r.db.QueryRowContext(ctx, query, id))
}

func (r *ngoRepository) GetByUserID(ctx context.Context, userID int32) (*domain.NGO, error) {
	query := `SELECT id, user_id, name, registration_number, COALESCE(description, ''), COALESCE(website, ''), contact_email, created_on, updated_on
	          FROM ngos WHERE user_id = $1`
	return r.scanNGO(r.db.QueryRowContext(ctx, query, userID))
}

func (r *ngoRepository) List(ctx context.Context, page, pageSize int32) ([]domain.NGO, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT id, user_id, name, registration_number, COALESCE(description, ''), COALESCE(website, ''), contact_email, created_on, updated_on
	          FROM ngos ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var ngos []domain.NGO
	for rows.Next() {
		var ngo domain.NGO
		var createdOn, updatedOn time.Time
		if err := rows.Scan(&ngo.ID, &ngo.UserID, &ngo.Name, &ngo.RegistrationNumber, &ngo.Description, &ngo.Website, &ngo.ContactEmail, &createdOn, &updatedOn); err != nil {
			return nil, 0, err
		}
		ngo.CreatedOn = createdOn.Format("2006-01-02")
		ngo.UpdatedOn = updatedOn.Format("2006-01-02")
		ngos = append(ngos, ngo)
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM ngos`).Scan(&count); err != nil {
		return nil, 0, err
	}
	return ngos, count, nil
}

func (r *ngoRepository) Update(ctx context.Context, ngo *domain.NGO) error {
	query := `UPDATE ngos SET name = $1, description = $2, website = $3, contact_email = $4, updated_on = $5 WHERE id = $6`
	now := time.Now().Format("2006-01-02")
	_, err := r.db.ExecContext(ctx, query, ngo.Name, ngo.Description, ngo.Website, ngo.ContactEmail, now, ngo.ID)
	return err
}

func (r *ngoRepository) SaveDocument(ctx context.Context, ngoID int32, doc *domain.NGODocument) error {
	query := `INSERT INTO ngo_documents (ngo_id, type, registration_number, pan, certificate_number, audit_year, file_url, verified, verified_date)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          ON CONFLICT (ngo_id, type) DO UPDATE SET
	              registration_number = EXCLUDED.registration_number,
	              pan = EXCLUDED.pan,
	              certificate_number = EXCLUDED.certificate_number,
	              audit_year = EXCLUDED.audit_year,
	              file_url = EXCLUDED.file_url,
	              verified = EXCLUDED.verified,
	              verified_date = EXCLUDED.verified_date`
	_, err := r.db.ExecContext(ctx, query, ngoID, doc.Type, doc.RegistrationNumber, doc.PAN, doc.CertificateNumber, doc.AuditYear, doc.FileURL, doc.Verified, doc.VerifiedDate)
	return err
}

func (r *ngoRepository) GetDocumentBundle(ctx context.Context, ngoID int32) (*domain.DocumentBundle, error) {
	bundle := &domain.DocumentBundle{
		Documents: make(map[domain.DocumentType]*domain.NGODocument),
	}

	query := `SELECT type, COALESCE(registration_number, ''), COALESCE(pan, ''), COALESCE(certificate_number, ''), COALESCE(audit_year, 0), COALESCE(file_url, ''), verified, verified_date
	          FROM ngo_documents WHERE ngo_id = $1`
	rows, err := r.db.QueryContext(ctx, query, ngoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var doc domain.NGODocument
		var verifiedDate sql.NullTime
		if err := rows.Scan(&doc.Type, &doc.RegistrationNumber, &doc.PAN, &doc.CertificateNumber, &doc.AuditYear, &doc.FileURL, &doc.Verified, &verifiedDate); err != nil {
			return nil, err
		}
		if verifiedDate.Valid {
			doc.VerifiedDate = verifiedDate.Time
		}
		bundle.Documents[doc.Type] = &doc
	}

	// Compliance flags live in a companion row; a missing row means the NGO
	// has reported nothing yet
	flagQuery := `SELECT annual_returns_filed, audit_reports_submitted, transparency_score, inconsistency_flags, complaint_history
	              FROM ngo_compliance WHERE ngo_id = $1`
	err = r.db.QueryRowContext(ctx, flagQuery, ngoID).Scan(
		&bundle.AnnualReturnsFiled,
		&bundle.AuditReportsSubmitted,
		&bundle.TransparencyScore,
		pq.Array(&bundle.InconsistencyFlags),
		pq.Array(&bundle.ComplaintHistory),
	)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	return bundle, nil
}

func (r *ngoRepository) UpdateComplianceFlags(ctx context.Context, ngoID int32, bundle *domain.DocumentBundle) error {
	query := `INSERT INTO ngo_compliance (ngo_id, annual_returns_filed, audit_reports_submitted, transparency_score, inconsistency_flags, complaint_history)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          ON CONFLICT (ngo_id) DO UPDATE SET
	              annual_returns_filed = EXCLUDED.annual_returns_filed,
	              audit_reports_submitted = EXCLUDED.audit_reports_submitted,
	              transparency_score = EXCLUDED.transparency_score,
	              inconsistency_flags = EXCLUDED.inconsistency_flags,
	              complaint_history = EXCLUDED.complaint_history`
	_, err := r.db.ExecContext(ctx, query, ngoID,
		bundle.AnnualReturnsFiled, bundle.AuditReportsSubmitted, bundle.TransparencyScore,
		pq.Array(bundle.InconsistencyFlags), pq.Array(bundle.ComplaintHistory))
	return err
}

func (r *ngoRepository) SaveVerificationResult(ctx context.Context, result *domain.VerificationResult) error {
	documents, err := json.Marshal(result.Documents)
	if err != nil {
		return fmt.Errorf("failed to marshal documents: %w", err)
	}
	badges, err := json.Marshal(result.Badges)
	if err != nil {
		return fmt.Errorf("failed to marshal badges: %w", err)
	}

	query := `INSERT INTO ngo_verifications (ngo_id, level, verified_date, expiry_date, next_review_date, compliance_score, fraud_risk_score, documents, badges)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          ON CONFLICT (ngo_id) DO UPDATE SET
	              level = EXCLUDED.level,
	              verified_date = EXCLUDED.verified_date,
	              expiry_date = EXCLUDED.expiry_date,
	              next_review_date = EXCLUDED.next_review_date,
	              compliance_score = EXCLUDED.compliance_score,
	              fraud_risk_score = EXCLUDED.fraud_risk_score,
	              documents = EXCLUDED.documents,
	              badges = EXCLUDED.badges`
	_, err = r.db.ExecContext(ctx, query, result.NGOID, result.VerificationLevel,
		result.VerifiedDate, result.ExpiryDate, result.NextReviewDate,
		result.ComplianceScore, result.FraudRiskScore, documents, badges)
	return err
}

func (r *ngoRepository) GetVerificationResult(ctx context.Context, ngoID int32) (*domain.VerificationResult, error) {
	query := `SELECT ngo_id, level, verified_date, expiry_date, next_review_date, compliance_score, fraud_risk_score, documents, badges
	          FROM ngo_verifications WHERE ngo_id = $1`

	var result domain.VerificationResult
	var documents, badges []byte
	err := r.db.QueryRowContext(ctx, query, ngoID).Scan(
		&result.NGOID, &result.VerificationLevel, &result.VerifiedDate, &result.ExpiryDate,
		&result.NextReviewDate, &result.ComplianceScore, &result.FraudRiskScore, &documents, &badges)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(documents, &result.Documents); err != nil {
		return nil, fmt.Errorf("failed to unmarshal documents: %w", err)
	}
	if err := json.Unmarshal(badges, &result.Badges); err != nil {
		return nil, fmt.Errorf("failed to unmarshal badges: %w", err)
	}
	return &result, nil
}

func (r *ngoRepository) ListDueForReview(ctx context.Context, before time.Time) ([]domain.NGO, error) {
	query := `SELECT n.id, n.user_id, n.name, n.registration_number, COALESCE(n.description, ''), COALESCE(n.website, ''), n.contact_email, n.created_on, n.updated_on
	          FROM ngos n
	          JOIN ngo_verifications v ON v.ngo_id = n.id
	          WHERE v.next_review_date <= $1
	          ORDER BY v.next_review_date`
	rows, err := r.db.QueryContext(ctx, query, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ngos []domain.NGO
	for rows.Next() {
		var ngo domain.NGO
		var createdOn, updatedOn time.Time
		if err := rows.Scan(&ngo.ID, &ngo.UserID, &ngo.Name, &ngo.RegistrationNumber, &ngo.Description, &ngo.Website, &ngo.ContactEmail, &createdOn, &updatedOn); err != nil {
			return nil, err
		}
		ngo.CreatedOn = createdOn.Format("2006-01-02")
		ngo.UpdatedOn = updatedOn.Format("2006-01-02")
		ngos = append(ngos, ngo)
	}
	return ngos, rows.Err()
}

func (r *ngoRepository) scanNGO(row *sql.Row) (*domain.NGO, error) {
	var ngo domain.NGO
	var createdOn, updatedOn time.Time
	err := row.Scan(&ngo.ID, &ngo.UserID, &ngo.Name, &ngo.RegistrationNumber, &ngo.Description, &ngo.Website, &ngo.ContactEmail, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	ngo.CreatedOn = createdOn.Format("2006-01-02")
	ngo.UpdatedOn = updatedOn.Format("2006-01-02")
	return &ngo, nil
}
