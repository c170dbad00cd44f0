package repository

import (
	"context"
)

const getShopByOwnerID = `-- name: GetShopByOwnerID :one
SELECT id, owner_id, name, url, email, is_open, base_shipping_price
FROM shops
WHERE owner_id = $1
`

func (q *Queries) GetShopByOwnerID(ctx context.Context, ownerID int64) (Shop, error) {
	row := q.db.QueryRow(ctx, getShopByOwnerID, ownerID)
	var i Shop
	err := row.Scan(&i.ID, &i.OwnerID, &i.Name, &i.Url, &i.Email, &i.IsOpen, &i.BaseShippingPrice)
	return i, err
}

const setShopOpen = `-- name: SetShopOpen :one
UPDATE shops
SET is_open = $2
WHERE id = $1
RETURNING id, owner_id, name, url, email, is_open, base_shipping_price
`

type SetShopOpenParams struct {
	ID     int64
	IsOpen bool
}

func (q *Queries) SetShopOpen(ctx context.Context, arg SetShopOpenParams) (Shop, error) {
	row := q.db.QueryRow(ctx, setShopOpen, arg.ID, arg.IsOpen)
	var i Shop
	err := row.Scan(&i.ID, &i.OwnerID, &i.Name, &i.Url, &i.Email, &i.IsOpen, &i.BaseShippingPrice)
	return i, err
}
