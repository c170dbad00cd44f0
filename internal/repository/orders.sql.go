package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const getBasketByUserID = `-- name: GetBasketByUserID :one
SELECT id, user_id, state, created_at
FROM buyer_orders
WHERE user_id = $1 AND state = 'basket'
`

func (q *Queries) GetBasketByUserID(ctx context.Context, userID int64) (BuyerOrder, error) {
	row := q.db.QueryRow(ctx, getBasketByUserID, userID)
	var i BuyerOrder
	err := row.Scan(&i.ID, &i.UserID, &i.State, &i.CreatedAt)
	return i, err
}

const createBasket = `-- name: CreateBasket :one
INSERT INTO buyer_orders (user_id, state)
VALUES ($1, 'basket')
ON CONFLICT (user_id) WHERE state = 'basket' DO UPDATE SET user_id = EXCLUDED.user_id
RETURNING id, user_id, state, created_at
`

// CreateBasket gets or creates the single open basket for a user. The
// partial unique index on (user_id) WHERE state='basket' makes the
// get-or-create race-free: a concurrent insert resolves to the same row.
func (q *Queries) CreateBasket(ctx context.Context, userID int64) (BuyerOrder, error) {
	row := q.db.QueryRow(ctx, createBasket, userID)
	var i BuyerOrder
	err := row.Scan(&i.ID, &i.UserID, &i.State, &i.CreatedAt)
	return i, err
}

const getBuyerOrderForUser = `-- name: GetBuyerOrderForUser :one
SELECT id, user_id, state, created_at
FROM buyer_orders
WHERE id = $1 AND user_id = $2 AND state <> 'basket'
`

type GetBuyerOrderForUserParams struct {
	ID     int64
	UserID int64
}

func (q *Queries) GetBuyerOrderForUser(ctx context.Context, arg GetBuyerOrderForUserParams) (BuyerOrder, error) {
	row := q.db.QueryRow(ctx, getBuyerOrderForUser, arg.ID, arg.UserID)
	var i BuyerOrder
	err := row.Scan(&i.ID, &i.UserID, &i.State, &i.CreatedAt)
	return i, err
}

const listBuyerOrders = `-- name: ListBuyerOrders :many
SELECT id, user_id, state, created_at
FROM buyer_orders
WHERE user_id = $1 AND state <> 'basket'
ORDER BY id
`

func (q *Queries) ListBuyerOrders(ctx context.Context, userID int64) ([]BuyerOrder, error) {
	rows, err := q.db.Query(ctx, listBuyerOrders, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []BuyerOrder
	for rows.Next() {
		var i BuyerOrder
		if err := rows.Scan(&i.ID, &i.UserID, &i.State, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const acceptBuyerOrder = `-- name: AcceptBuyerOrder :exec
UPDATE buyer_orders
SET state = $2, created_at = $3
WHERE id = $1
`

type AcceptBuyerOrderParams struct {
	ID        int64
	State     string
	CreatedAt pgtype.Timestamptz
}

func (q *Queries) AcceptBuyerOrder(ctx context.Context, arg AcceptBuyerOrderParams) error {
	_, err := q.db.Exec(ctx, acceptBuyerOrder, arg.ID, arg.State, arg.CreatedAt)
	return err
}

const setBuyerOrderState = `-- name: SetBuyerOrderState :exec
UPDATE buyer_orders
SET state = $2
WHERE id = $1
`

type SetBuyerOrderStateParams struct {
	ID    int64
	State string
}

func (q *Queries) SetBuyerOrderState(ctx context.Context, arg SetBuyerOrderStateParams) error {
	_, err := q.db.Exec(ctx, setBuyerOrderState, arg.ID, arg.State)
	return err
}

const deleteBuyerOrder = `-- name: DeleteBuyerOrder :exec
DELETE FROM buyer_orders
WHERE id = $1
`

func (q *Queries) DeleteBuyerOrder(ctx context.Context, id int64) error {
	_, err := q.db.Exec(ctx, deleteBuyerOrder, id)
	return err
}

const sellerOrderDetailColumns = `so.id, so.buyer_order_id, so.shop_id, so.state, so.contact_id,
	so.shipping_price, so.created_at, so.updated_at,
	s.name AS shop_name, s.email AS shop_email,
	bo.user_id AS buyer_id, u.email AS buyer_email, bo.state AS buyer_state`

const sellerOrderDetailFrom = `
FROM seller_orders so
JOIN shops s ON s.id = so.shop_id
JOIN buyer_orders bo ON bo.id = so.buyer_order_id
JOIN users u ON u.id = bo.user_id
`

const getSellerOrderDetail = `-- name: GetSellerOrderDetail :one
SELECT ` + sellerOrderDetailColumns + sellerOrderDetailFrom + `
WHERE so.id = $1
`

func (q *Queries) GetSellerOrderDetail(ctx context.Context, id int64) (SellerOrderDetailRow, error) {
	row := q.db.QueryRow(ctx, getSellerOrderDetail, id)
	var i SellerOrderDetailRow
	err := scanSellerOrderDetail(row, &i)
	return i, err
}

const getSellerOrderForUpdate = `-- name: GetSellerOrderForUpdate :one
SELECT id, buyer_order_id, shop_id, state, contact_id, shipping_price, created_at, updated_at
FROM seller_orders
WHERE id = $1
FOR UPDATE
`

// GetSellerOrderForUpdate locks the seller order row for the rest of the
// transaction. State gates that guard a rollback must re-read through this
// lock, or two concurrent cancels could both pass and release stock twice.
func (q *Queries) GetSellerOrderForUpdate(ctx context.Context, id int64) (SellerOrder, error) {
	row := q.db.QueryRow(ctx, getSellerOrderForUpdate, id)
	var i SellerOrder
	err := row.Scan(&i.ID, &i.BuyerOrderID, &i.ShopID, &i.State, &i.ContactID,
		&i.ShippingPrice, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const listSellerOrders = `-- name: ListSellerOrders :many
SELECT ` + sellerOrderDetailColumns + sellerOrderDetailFrom + `
WHERE so.buyer_order_id = $1
ORDER BY so.id
`

func (q *Queries) ListSellerOrders(ctx context.Context, buyerOrderID int64) ([]SellerOrderDetailRow, error) {
	rows, err := q.db.Query(ctx, listSellerOrders, buyerOrderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSellerOrderDetails(rows)
}

const listShopOrders = `-- name: ListShopOrders :many
SELECT ` + sellerOrderDetailColumns + sellerOrderDetailFrom + `
WHERE so.shop_id = $1 AND so.state <> 'basket'
ORDER BY so.id
`

func (q *Queries) ListShopOrders(ctx context.Context, shopID int64) ([]SellerOrderDetailRow, error) {
	rows, err := q.db.Query(ctx, listShopOrders, shopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSellerOrderDetails(rows)
}

func scanSellerOrderDetail(row pgx.Row, i *SellerOrderDetailRow) error {
	return row.Scan(&i.ID, &i.BuyerOrderID, &i.ShopID, &i.State, &i.ContactID,
		&i.ShippingPrice, &i.CreatedAt, &i.UpdatedAt,
		&i.ShopName, &i.ShopEmail, &i.BuyerID, &i.BuyerEmail, &i.BuyerState)
}

func scanSellerOrderDetails(rows pgx.Rows) ([]SellerOrderDetailRow, error) {
	var items []SellerOrderDetailRow
	for rows.Next() {
		var i SellerOrderDetailRow
		if err := scanSellerOrderDetail(rows, &i); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const getBasketSellerOrder = `-- name: GetBasketSellerOrder :one
SELECT id, buyer_order_id, shop_id, state, contact_id, shipping_price, created_at, updated_at
FROM seller_orders
WHERE buyer_order_id = $1 AND shop_id = $2 AND state = 'basket'
`

type GetBasketSellerOrderParams struct {
	BuyerOrderID int64
	ShopID       int64
}

func (q *Queries) GetBasketSellerOrder(ctx context.Context, arg GetBasketSellerOrderParams) (SellerOrder, error) {
	row := q.db.QueryRow(ctx, getBasketSellerOrder, arg.BuyerOrderID, arg.ShopID)
	var i SellerOrder
	err := row.Scan(&i.ID, &i.BuyerOrderID, &i.ShopID, &i.State, &i.ContactID,
		&i.ShippingPrice, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const createSellerOrder = `-- name: CreateSellerOrder :one
INSERT INTO seller_orders (buyer_order_id, shop_id, state, shipping_price)
VALUES ($1, $2, 'basket', $3)
RETURNING id, buyer_order_id, shop_id, state, contact_id, shipping_price, created_at, updated_at
`

type CreateSellerOrderParams struct {
	BuyerOrderID  int64
	ShopID        int64
	ShippingPrice int32
}

func (q *Queries) CreateSellerOrder(ctx context.Context, arg CreateSellerOrderParams) (SellerOrder, error) {
	row := q.db.QueryRow(ctx, createSellerOrder, arg.BuyerOrderID, arg.ShopID, arg.ShippingPrice)
	var i SellerOrder
	err := row.Scan(&i.ID, &i.BuyerOrderID, &i.ShopID, &i.State, &i.ContactID,
		&i.ShippingPrice, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const placeSellerOrder = `-- name: PlaceSellerOrder :exec
UPDATE seller_orders
SET state = $2, contact_id = $3, created_at = $4, updated_at = now()
WHERE id = $1
`

type PlaceSellerOrderParams struct {
	ID        int64
	State     string
	ContactID int64
	CreatedAt pgtype.Timestamptz
}

func (q *Queries) PlaceSellerOrder(ctx context.Context, arg PlaceSellerOrderParams) error {
	_, err := q.db.Exec(ctx, placeSellerOrder, arg.ID, arg.State, arg.ContactID, arg.CreatedAt)
	return err
}

const setSellerOrderState = `-- name: SetSellerOrderState :exec
UPDATE seller_orders
SET state = $2, updated_at = now()
WHERE id = $1
`

type SetSellerOrderStateParams struct {
	ID    int64
	State string
}

func (q *Queries) SetSellerOrderState(ctx context.Context, arg SetSellerOrderStateParams) error {
	_, err := q.db.Exec(ctx, setSellerOrderState, arg.ID, arg.State)
	return err
}

const setSellerOrderShippingPrice = `-- name: SetSellerOrderShippingPrice :exec
UPDATE seller_orders
SET shipping_price = $2, updated_at = now()
WHERE id = $1
`

type SetSellerOrderShippingPriceParams struct {
	ID            int64
	ShippingPrice int32
}

func (q *Queries) SetSellerOrderShippingPrice(ctx context.Context, arg SetSellerOrderShippingPriceParams) error {
	_, err := q.db.Exec(ctx, setSellerOrderShippingPrice, arg.ID, arg.ShippingPrice)
	return err
}

const deleteSellerOrders = `-- name: DeleteSellerOrders :exec
DELETE FROM seller_orders
WHERE id = ANY($1::bigint[])
`

func (q *Queries) DeleteSellerOrders(ctx context.Context, ids []int64) error {
	_, err := q.db.Exec(ctx, deleteSellerOrders, ids)
	return err
}

const countSellerOrders = `-- name: CountSellerOrders :one
SELECT COUNT(*) FROM seller_orders WHERE buyer_order_id = $1
`

func (q *Queries) CountSellerOrders(ctx context.Context, buyerOrderID int64) (int64, error) {
	row := q.db.QueryRow(ctx, countSellerOrders, buyerOrderID)
	var count int64
	err := row.Scan(&count)
	return count, err
}
