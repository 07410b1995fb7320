package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/loanlink/loanlink/internal/domain/listing"
)

// ListingRepository implements listing.Repository.
type ListingRepository struct {
	pool *pgxpool.Pool
}

func NewListingRepository(pool *pgxpool.Pool) *ListingRepository {
	return &ListingRepository{pool: pool}
}

const borrowColumns = `id, borrow_id, owner_id, city, project, max_amount, max_rate, reason, deadline,
	other_detail, mortgage, mortgage_fixed, mortgage_other, mortgage_value,
	guarantee, guarantee_amount, risk_factor, total_risk_factor, created_at`

func (r *ListingRepository) CreateBorrow(ctx context.Context, b *listing.Borrow) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO borrow_listings
		(borrow_id, owner_id, city, project, max_amount, max_rate, reason, deadline,
		 other_detail, mortgage, mortgage_fixed, mortgage_other, mortgage_value,
		 guarantee, guarantee_amount, risk_factor, total_risk_factor, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
	`, b.BorrowID, b.OwnerID, b.City, b.Project, b.MaxAmount, b.MaxRate, b.Reason, b.Deadline,
		b.OtherDetail, b.Mortgage, b.MortgageFixed, b.MortgageOther, b.MortgageValue,
		b.Guarantee, b.GuaranteeAmount, b.RiskFactor, b.TotalRiskFactor, b.CreatedAt)
	return err
}

func (r *ListingRepository) GetBorrow(ctx context.Context, borrowID uuid.UUID) (*listing.Borrow, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+borrowColumns+`
		FROM borrow_listings WHERE borrow_id=$1
	`, borrowID)
	return scanBorrow(row)
}

func (r *ListingRepository) ListBorrowsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*listing.Borrow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+borrowColumns+`
		FROM borrow_listings WHERE owner_id=$1 ORDER BY id
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var borrows []*listing.Borrow
	for rows.Next() {
		b, err := scanBorrow(rows)
		if err != nil {
			return nil, err
		}
		borrows = append(borrows, b)
	}
	return borrows, rows.Err()
}

func (r *ListingRepository) CreateLend(ctx context.Context, l *listing.Lend) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO lend_listings
		(lend_id, owner_id, max_amount, deadline, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`, l.LendID, l.OwnerID, l.MaxAmount, l.Deadline, l.CreatedAt)
	return err
}

func (r *ListingRepository) GetLend(ctx context.Context, lendID uuid.UUID) (*listing.Lend, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, lend_id, owner_id, max_amount, deadline, created_at
		FROM lend_listings WHERE lend_id=$1
	`, lendID)
	return scanLend(row)
}

func (r *ListingRepository) ListLendsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*listing.Lend, error) {
	return r.listLends(ctx, `
		SELECT id, lend_id, owner_id, max_amount, deadline, created_at
		FROM lend_listings WHERE owner_id=$1 ORDER BY id
	`, ownerID)
}

func (r *ListingRepository) ListLends(ctx context.Context) ([]*listing.Lend, error) {
	return r.listLends(ctx, `
		SELECT id, lend_id, owner_id, max_amount, deadline, created_at
		FROM lend_listings ORDER BY id
	`)
}

func (r *ListingRepository) listLends(ctx context.Context, query string, args ...interface{}) ([]*listing.Lend, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var lends []*listing.Lend
	for rows.Next() {
		l, err := scanLend(rows)
		if err != nil {
			return nil, err
		}
		lends = append(lends, l)
	}
	return lends, rows.Err()
}

func scanBorrow(row pgx.Row) (*listing.Borrow, error) {
	var b listing.Borrow
	if err := row.Scan(&b.ID, &b.BorrowID, &b.OwnerID, &b.City, &b.Project, &b.MaxAmount, &b.MaxRate,
		&b.Reason, &b.Deadline, &b.OtherDetail, &b.Mortgage, &b.MortgageFixed, &b.MortgageOther,
		&b.MortgageValue, &b.Guarantee, &b.GuaranteeAmount, &b.RiskFactor, &b.TotalRiskFactor,
		&b.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func scanLend(row pgx.Row) (*listing.Lend, error) {
	var l listing.Lend
	if err := row.Scan(&l.ID, &l.LendID, &l.OwnerID, &l.MaxAmount, &l.Deadline, &l.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}
