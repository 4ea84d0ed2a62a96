package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Build is one run of "brokerseo build".
type Build struct {
	// ID is assigned by SaveBuild.
	ID int64

	// Timestamp is when the build was stored.
	Timestamp time.Time

	// SortSpec is the ranking used, e.g. "score desc".
	SortSpec string

	// CatalogSource is where the broker data came from.
	CatalogSource string

	// Pages holds one summary per rendered page.
	Pages []PageBuild
}

// PageBuild summarizes one rendered page.
type PageBuild struct {
	Path           string
	BrokerCount    int
	RegulatedCount int
	AvgScore       float64
	AvgSpread      float64
	MinDeposit     float64

	// Fingerprint is the digest of the generated content.
	Fingerprint string

	// BrokerIDs are the ranked broker ids on the page.
	BrokerIDs []string

	// Error is set when the page failed to render.
	Error string
}

// SaveBuild stores a build and its pages in one transaction and sets b.ID.
func (sdb *SiteDB) SaveBuild(ctx context.Context, b *Build) error {
	tx, err := sdb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO builds (sort_spec, page_count, catalog_source) VALUES (?, ?, ?)`,
		b.SortSpec, len(b.Pages), b.CatalogSource,
	)
	if err != nil {
		return fmt.Errorf("failed to insert build: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get build id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO page_builds (build_id, path, broker_count, regulated_count, avg_score, avg_spread, min_deposit, fingerprint, broker_ids, error)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare page insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range b.Pages {
		idsJSON, err := json.Marshal(p.BrokerIDs)
		if err != nil {
			return fmt.Errorf("failed to serialize broker ids: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, id, p.Path, p.BrokerCount, p.RegulatedCount,
			p.AvgScore, p.AvgSpread, p.MinDeposit, p.Fingerprint, string(idsJSON), p.Error); err != nil {
			return fmt.Errorf("failed to insert page %s: %w", p.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit build: %w", err)
	}
	b.ID = id
	return nil
}

// LatestBuild returns the most recent build with its pages,
// or nil if no build has been stored.
func (sdb *SiteDB) LatestBuild(ctx context.Context) (*Build, error) {
	var id int64
	err := sdb.db.QueryRowContext(ctx, `SELECT id FROM builds ORDER BY id DESC LIMIT 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest build: %w", err)
	}
	return sdb.GetBuild(ctx, id)
}

// GetBuild returns the build with the given id, or nil if it doesn't exist.
func (sdb *SiteDB) GetBuild(ctx context.Context, id int64) (*Build, error) {
	b := Build{ID: id}
	var timestamp string
	var source sql.NullString

	err := sdb.db.QueryRowContext(ctx,
		`SELECT timestamp, sort_spec, catalog_source FROM builds WHERE id = ?`, id,
	).Scan(&timestamp, &b.SortSpec, &source)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get build: %w", err)
	}
	b.Timestamp = parseTimestamp(timestamp)
	b.CatalogSource = source.String

	rows, err := sdb.db.QueryContext(ctx, `
	SELECT path, broker_count, regulated_count, avg_score, avg_spread, min_deposit, fingerprint, broker_ids, error
	FROM page_builds
	WHERE build_id = ?
	ORDER BY id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get build pages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanPageBuild(rows)
		if err != nil {
			return nil, err
		}
		b.Pages = append(b.Pages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &b, nil
}

// BuildMetadata contains summary information about a build.
// This is used for listing builds without loading every page row.
type BuildMetadata struct {
	ID        int64
	Timestamp time.Time
	SortSpec  string
	PageCount int
}

// ListBuilds returns build metadata, newest first. limit <= 0 returns all.
func (sdb *SiteDB) ListBuilds(ctx context.Context, limit int) ([]BuildMetadata, error) {
	query := `SELECT id, timestamp, sort_spec, page_count FROM builds ORDER BY id DESC`
	args := make([]any, 0, 1)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := sdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list builds: %w", err)
	}
	defer rows.Close()

	var results []BuildMetadata
	for rows.Next() {
		var meta BuildMetadata
		var timestamp string
		if err := rows.Scan(&meta.ID, &timestamp, &meta.SortSpec, &meta.PageCount); err != nil {
			return nil, fmt.Errorf("failed to scan build: %w", err)
		}
		meta.Timestamp = parseTimestamp(timestamp)
		results = append(results, meta)
	}
	return results, rows.Err()
}

// PageHistory returns every stored summary of one page, newest first.
func (sdb *SiteDB) PageHistory(ctx context.Context, path string) ([]PageBuild, error) {
	rows, err := sdb.db.QueryContext(ctx, `
	SELECT path, broker_count, regulated_count, avg_score, avg_spread, min_deposit, fingerprint, broker_ids, error
	FROM page_builds
	WHERE path = ?
	ORDER BY build_id DESC
	`, path)
	if err != nil {
		return nil, fmt.Errorf("failed to get page history: %w", err)
	}
	defer rows.Close()

	var results []PageBuild
	for rows.Next() {
		p, err := scanPageBuild(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, p)
	}
	return results, rows.Err()
}

func scanPageBuild(rows *sql.Rows) (PageBuild, error) {
	var p PageBuild
	var idsJSON, errText sql.NullString
	if err := rows.Scan(&p.Path, &p.BrokerCount, &p.RegulatedCount, &p.AvgScore,
		&p.AvgSpread, &p.MinDeposit, &p.Fingerprint, &idsJSON, &errText); err != nil {
		return p, fmt.Errorf("failed to scan page build: %w", err)
	}
	p.Error = errText.String
	if idsJSON.Valid && idsJSON.String != "" {
		if err := json.Unmarshal([]byte(idsJSON.String), &p.BrokerIDs); err != nil {
			// Ids are informational; a damaged value is dropped.
			p.BrokerIDs = nil
		}
	}
	return p, nil
}

// ChangeKind classifies how a page differs between two builds.
type ChangeKind string

// Change kinds reported by DiffBuilds.
const (
	ChangeAdded     ChangeKind = "added"
	ChangeRemoved   ChangeKind = "removed"
	ChangeModified  ChangeKind = "modified"
	ChangeUnchanged ChangeKind = "unchanged"
)

// PageChange describes one page in a build comparison.
type PageChange struct {
	Path string
	Kind ChangeKind

	// BrokerDelta is the change in broker count (current - previous).
	BrokerDelta int

	// ScoreDelta is the change in average score.
	ScoreDelta float64
}

// DiffBuilds compares two builds page by page. prev may be nil, in which
// case every page is reported as added. The result follows current's page
// order, then removed pages in prev's order.
func DiffBuilds(prev, current *Build) []PageChange {
	old := make(map[string]PageBuild)
	if prev != nil {
		for _, p := range prev.Pages {
			old[p.Path] = p
		}
	}

	var changes []PageChange
	seen := make(map[string]struct{}, len(current.Pages))
	for _, p := range current.Pages {
		seen[p.Path] = struct{}{}
		o, ok := old[p.Path]
		c := PageChange{Path: p.Path, Kind: ChangeAdded, BrokerDelta: p.BrokerCount, ScoreDelta: p.AvgScore}
		if ok {
			c.BrokerDelta = p.BrokerCount - o.BrokerCount
			c.ScoreDelta = p.AvgScore - o.AvgScore
			c.Kind = ChangeUnchanged
			if o.Fingerprint != p.Fingerprint {
				c.Kind = ChangeModified
			}
		}
		changes = append(changes, c)
	}
	if prev != nil {
		for _, p := range prev.Pages {
			if _, ok := seen[p.Path]; ok {
				continue
			}
			changes = append(changes, PageChange{
				Path:        p.Path,
				Kind:        ChangeRemoved,
				BrokerDelta: -p.BrokerCount,
				ScoreDelta:  -p.AvgScore,
			})
		}
	}
	return changes
}
