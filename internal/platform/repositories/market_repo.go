package repositories

import (
	"context"
	"database/sql"
	"errors"

	"blockstream/internal/platform/models"
)

type SQLNFTBidRepository struct {
	db *sql.DB
}

func NewSQLNFTBidRepository(db *sql.DB) *SQLNFTBidRepository {
	return &SQLNFTBidRepository{db: db}
}

const nftBidColumns = `id, token_address, bid_amount, bidder, marketplace, timestamp`

func (r *SQLNFTBidRepository) List(ctx context.Context) ([]*models.NFTBid, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+nftBidColumns+` FROM nft_bids ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bids := []*models.NFTBid{}
	for rows.Next() {
		b, err := scanNFTBid(rows)
		if err != nil {
			return nil, err
		}
		bids = append(bids, b)
	}
	return bids, rows.Err()
}

func (r *SQLNFTBidRepository) GetByID(ctx context.Context, id string) (*models.NFTBid, error) {
	b, err := scanNFTBid(r.db.QueryRowContext(ctx, `SELECT `+nftBidColumns+` FROM nft_bids WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return b, err
}

// InsertNFTBid is used by the seeder only; bids are read-only to API callers.
func InsertNFTBid(ctx context.Context, db *sql.DB, b *models.NFTBid) error {
	_, err := db.ExecContext(ctx, `
		INSERT OR IGNORE INTO nft_bids (`+nftBidColumns+`) VALUES (?, ?, ?, ?, ?, ?)
	`, b.ID, b.TokenAddress, b.BidAmount.String(), b.Bidder, b.Marketplace, toMillis(b.Timestamp))
	return err
}

func scanNFTBid(s scanner) (*models.NFTBid, error) {
	var b models.NFTBid
	var ts int64
	if err := s.Scan(&b.ID, &b.TokenAddress, &b.BidAmount, &b.Bidder, &b.Marketplace, &ts); err != nil {
		return nil, err
	}
	b.Timestamp = fromMillis(ts)
	return &b, nil
}

type SQLTokenPriceRepository struct {
	db *sql.DB
}

func NewSQLTokenPriceRepository(db *sql.DB) *SQLTokenPriceRepository {
	return &SQLTokenPriceRepository{db: db}
}

const tokenPriceColumns = `id, symbol, name, address, price, price_change_24h, volume_24h, last_updated`

func (r *SQLTokenPriceRepository) List(ctx context.Context) ([]*models.TokenPrice, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+tokenPriceColumns+` FROM token_prices ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	prices := []*models.TokenPrice{}
	for rows.Next() {
		p, err := scanTokenPrice(rows)
		if err != nil {
			return nil, err
		}
		prices = append(prices, p)
	}
	return prices, rows.Err()
}

func (r *SQLTokenPriceRepository) GetByID(ctx context.Context, id string) (*models.TokenPrice, error) {
	p, err := scanTokenPrice(r.db.QueryRowContext(ctx, `SELECT `+tokenPriceColumns+` FROM token_prices WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func InsertTokenPrice(ctx context.Context, db *sql.DB, p *models.TokenPrice) error {
	_, err := db.ExecContext(ctx, `
		INSERT OR IGNORE INTO token_prices (`+tokenPriceColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.Symbol, p.Name, p.Address, p.Price.String(), p.PriceChange24h.String(), p.Volume24h.String(), toMillis(p.LastUpdated))
	return err
}

func scanTokenPrice(s scanner) (*models.TokenPrice, error) {
	var p models.TokenPrice
	var ts int64
	if err := s.Scan(&p.ID, &p.Symbol, &p.Name, &p.Address, &p.Price, &p.PriceChange24h, &p.Volume24h, &ts); err != nil {
		return nil, err
	}
	p.LastUpdated = fromMillis(ts)
	return &p, nil
}
