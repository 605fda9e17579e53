package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/csytan/triplecrownforheart/internal/model"
)

const conflictDoNothing = "ON CONFLICT (id) DO NOTHING"

type repository struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

func NewLedgerRepository(pool *pgxpool.Pool) *repository {
	return &repository{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *repository) Load(ctx context.Context) (*model.Ledger, error) {
	const op = "repository.postgres.Load"

	riders, err := r.riders(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, model.ErrPersistence, err)
	}
	donations, err := r.donations(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, model.ErrPersistence, err)
	}
	payments, err := r.payments(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, model.ErrPersistence, err)
	}

	l, err := model.LedgerFrom(riders, donations, payments)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, model.ErrPersistence, err)
	}
	return l, nil
}

// Save inserts the appended entities in one transaction and returns the ones
// that were new. Rows are append-only: an id another writer inserted first is
// left untouched and missing from the result.
func (r *repository) Save(ctx context.Context, _ *model.Ledger, appended []model.Entity) ([]model.Entity, error) {
	const op = "repository.postgres.Save"

	var (
		riders    []model.Rider
		donations []model.Donation
		payments  []model.Payment
	)
	for _, e := range appended {
		switch v := e.(type) {
		case model.Rider:
			riders = append(riders, v)
		case model.Donation:
			donations = append(donations, v)
		case model.Payment:
			payments = append(payments, v)
		default:
			return nil, fmt.Errorf("%s: %w: %w: %T", op, model.ErrPersistence, model.ErrUnknownKind, e)
		}
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, model.ErrPersistence, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	inserted := make(map[model.EntityKind]map[string]struct{}, 3)

	ids, err := r.insertRiders(ctx, tx, riders)
	if err != nil {
		return nil, fmt.Errorf("%s: riders: %w: %w", op, model.ErrPersistence, err)
	}
	inserted[model.KindRider] = ids

	if ids, err = r.insertDonations(ctx, tx, donations); err != nil {
		return nil, fmt.Errorf("%s: donations: %w: %w", op, model.ErrPersistence, err)
	}
	inserted[model.KindDonation] = ids

	if ids, err = r.insertPayments(ctx, tx, payments); err != nil {
		return nil, fmt.Errorf("%s: payments: %w: %w", op, model.ErrPersistence, err)
	}
	inserted[model.KindPayment] = ids

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, model.ErrPersistence, err)
	}

	saved := make([]model.Entity, 0, len(appended))
	for _, e := range appended {
		if _, ok := inserted[e.EntityKind()][e.EntityID()]; ok {
			saved = append(saved, e)
		}
	}
	return saved, nil
}

// insert runs q and returns the ids of the rows it actually inserted.
func (r *repository) insert(ctx context.Context, tx pgx.Tx, q sq.InsertBuilder) (map[string]struct{}, error) {
	sqlStr, args, err := q.Suffix(conflictDoNothing + " RETURNING id").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}

	out := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out, nil
}

func (r *repository) insertRiders(ctx context.Context, tx pgx.Tx, riders []model.Rider) (map[string]struct{}, error) {
	if len(riders) == 0 {
		return nil, nil
	}
	q := r.sb.Insert("riders").Columns("id", "first_name", "last_name", "name", "created_at")
	for _, rd := range riders {
		q = q.Values(rd.ID, rd.FirstName, rd.LastName, rd.Name, createdAt(rd.CreatedAt))
	}
	return r.insert(ctx, tx, q)
}

func (r *repository) insertDonations(ctx context.Context, tx pgx.Tx, donations []model.Donation) (map[string]struct{}, error) {
	if len(donations) == 0 {
		return nil, nil
	}
	q := r.sb.Insert("donations").
		Columns("id", "recipient_id", "donor_name", "amount", "currency", "message", "raw_source", "created_at")
	for _, d := range donations {
		q = q.Values(d.ID, d.RecipientID, d.DonorName, sq.Expr("?::numeric", d.Amount.String()),
			d.Currency, d.Message, string(d.RawSource), createdAt(d.CreatedAt))
	}
	return r.insert(ctx, tx, q)
}

func (r *repository) insertPayments(ctx context.Context, tx pgx.Tx, payments []model.Payment) (map[string]struct{}, error) {
	if len(payments) == 0 {
		return nil, nil
	}
	q := r.sb.Insert("payments").
		Columns("id", "payer_name", "item", "options", "amount", "currency", "created_at")
	for _, p := range payments {
		opts, err := json.Marshal(p.Options)
		if err != nil {
			return nil, err
		}
		q = q.Values(p.ID, p.PayerName, p.Item, sq.Expr("?::jsonb", string(opts)),
			sq.Expr("?::numeric", p.Amount.String()), p.Currency, createdAt(p.CreatedAt))
	}
	return r.insert(ctx, tx, q)
}

func (r *repository) riders(ctx context.Context) ([]model.Rider, error) {
	sqlStr, args, err := r.sb.
		Select("id", "first_name", "last_name", "name", "created_at").
		From("riders").
		OrderBy("lower(first_name)", "lower(last_name)", "id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Rider
	for rows.Next() {
		var rd model.Rider
		if err := rows.Scan(&rd.ID, &rd.FirstName, &rd.LastName, &rd.Name, &rd.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rd)
	}
	return out, rows.Err()
}

func (r *repository) donations(ctx context.Context) ([]model.Donation, error) {
	sqlStr, args, err := r.sb.
		Select("id", "recipient_id", "donor_name", "amount::text", "currency", "message", "raw_source", "created_at").
		From("donations").
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Donation
	for rows.Next() {
		var (
			d      model.Donation
			amount string
			source string
		)
		if err := rows.Scan(&d.ID, &d.RecipientID, &d.DonorName, &amount, &d.Currency, &d.Message, &source, &d.CreatedAt); err != nil {
			return nil, err
		}
		if d.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, err
		}
		d.RawSource = model.DonationSource(source)
		d.CreatedAt = d.CreatedAt.UTC()
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *repository) payments(ctx context.Context) ([]model.Payment, error) {
	sqlStr, args, err := r.sb.
		Select("id", "payer_name", "item", "options::text", "amount::text", "currency", "created_at").
		From("payments").
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Payment
	for rows.Next() {
		var (
			p            model.Payment
			opts, amount string
		)
		if err := rows.Scan(&p.ID, &p.PayerName, &p.Item, &opts, &amount, &p.Currency, &p.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(opts), &p.Options); err != nil {
			return nil, err
		}
		if p.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, err
		}
		p.CreatedAt = p.CreatedAt.UTC()
		out = append(out, p)
	}
	return out, rows.Err()
}

func createdAt(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}
