package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
)

const offerDetailColumns = `o.id, o.shop_id, o.product_id, o.external_id, o.quantity, o.price, o.price_rrc,
	p.name AS product_name, s.name AS shop_name, s.email AS shop_email, s.is_open, s.base_shipping_price`

const getOfferDetail = `-- name: GetOfferDetail :one
SELECT ` + offerDetailColumns + `
FROM product_offers o
JOIN products p ON p.id = o.product_id
JOIN shops s ON s.id = o.shop_id
WHERE o.id = $1
`

func (q *Queries) GetOfferDetail(ctx context.Context, id int64) (OfferDetailRow, error) {
	row := q.db.QueryRow(ctx, getOfferDetail, id)
	var i OfferDetailRow
	err := row.Scan(&i.ID, &i.ShopID, &i.ProductID, &i.ExternalID, &i.Quantity, &i.Price,
		&i.PriceRrc, &i.ProductName, &i.ShopName, &i.ShopEmail, &i.ShopIsOpen, &i.BaseShippingPrice)
	return i, err
}

const listOfferDetails = `-- name: ListOfferDetails :many
SELECT ` + offerDetailColumns + `
FROM product_offers o
JOIN products p ON p.id = o.product_id
JOIN shops s ON s.id = o.shop_id
WHERE o.id = ANY($1::bigint[])
ORDER BY o.id
`

func (q *Queries) ListOfferDetails(ctx context.Context, ids []int64) ([]OfferDetailRow, error) {
	rows, err := q.db.Query(ctx, listOfferDetails, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOfferDetails(rows)
}

const listOpenOffers = `-- name: ListOpenOffers :many
SELECT ` + offerDetailColumns + `
FROM product_offers o
JOIN products p ON p.id = o.product_id
JOIN shops s ON s.id = o.shop_id
WHERE s.is_open AND o.quantity > 0
ORDER BY o.id
`

func (q *Queries) ListOpenOffers(ctx context.Context) ([]OfferDetailRow, error) {
	rows, err := q.db.Query(ctx, listOpenOffers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOfferDetails(rows)
}

const listShopOffers = `-- name: ListShopOffers :many
SELECT ` + offerDetailColumns + `
FROM product_offers o
JOIN products p ON p.id = o.product_id
JOIN shops s ON s.id = o.shop_id
WHERE o.shop_id = $1
ORDER BY o.external_id
`

func (q *Queries) ListShopOffers(ctx context.Context, shopID int64) ([]OfferDetailRow, error) {
	rows, err := q.db.Query(ctx, listShopOffers, shopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOfferDetails(rows)
}

func scanOfferDetails(rows pgx.Rows) ([]OfferDetailRow, error) {
	var items []OfferDetailRow
	for rows.Next() {
		var i OfferDetailRow
		if err := rows.Scan(&i.ID, &i.ShopID, &i.ProductID, &i.ExternalID, &i.Quantity,
			&i.Price, &i.PriceRrc, &i.ProductName, &i.ShopName, &i.ShopEmail,
			&i.ShopIsOpen, &i.BaseShippingPrice); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const getOfferForUpdate = `-- name: GetOfferForUpdate :one
SELECT id, shop_id, product_id, external_id, quantity, price, price_rrc
FROM product_offers
WHERE id = $1
FOR UPDATE
`

// GetOfferForUpdate locks the offer row until the surrounding transaction
// commits. Every inventory mutation goes through this lock.
func (q *Queries) GetOfferForUpdate(ctx context.Context, id int64) (ProductOffer, error) {
	row := q.db.QueryRow(ctx, getOfferForUpdate, id)
	var i ProductOffer
	err := row.Scan(&i.ID, &i.ShopID, &i.ProductID, &i.ExternalID, &i.Quantity, &i.Price, &i.PriceRrc)
	return i, err
}

const updateOfferQuantity = `-- name: UpdateOfferQuantity :exec
UPDATE product_offers
SET quantity = $2
WHERE id = $1
`

type UpdateOfferQuantityParams struct {
	ID       int64
	Quantity int32
}

func (q *Queries) UpdateOfferQuantity(ctx context.Context, arg UpdateOfferQuantityParams) error {
	_, err := q.db.Exec(ctx, updateOfferQuantity, arg.ID, arg.Quantity)
	return err
}
