package repository

import (
	"context"
)

const listOrderItems = `-- name: ListOrderItems :many
SELECT i.id, i.seller_order_id, i.offer_id, i.quantity, i.purchase_price, i.purchase_price_rrc,
	o.external_id, o.quantity AS offer_quantity, p.name AS product_name
FROM order_items i
JOIN product_offers o ON o.id = i.offer_id
JOIN products p ON p.id = o.product_id
WHERE i.seller_order_id = $1
ORDER BY i.offer_id
`

func (q *Queries) ListOrderItems(ctx context.Context, sellerOrderID int64) ([]OrderItemDetailRow, error) {
	rows, err := q.db.Query(ctx, listOrderItems, sellerOrderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []OrderItemDetailRow
	for rows.Next() {
		var i OrderItemDetailRow
		if err := rows.Scan(&i.ID, &i.SellerOrderID, &i.OfferID, &i.Quantity,
			&i.PurchasePrice, &i.PurchasePriceRrc, &i.OfferExternalID,
			&i.OfferQuantity, &i.ProductName); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const upsertOrderItem = `-- name: UpsertOrderItem :one
INSERT INTO order_items (seller_order_id, offer_id, quantity, purchase_price, purchase_price_rrc)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (seller_order_id, offer_id)
DO UPDATE SET quantity = EXCLUDED.quantity,
	purchase_price = EXCLUDED.purchase_price,
	purchase_price_rrc = EXCLUDED.purchase_price_rrc
RETURNING id, seller_order_id, offer_id, quantity, purchase_price, purchase_price_rrc
`

type UpsertOrderItemParams struct {
	SellerOrderID    int64
	OfferID          int64
	Quantity         int32
	PurchasePrice    int32
	PurchasePriceRrc int32
}

// UpsertOrderItem replaces the line for (order, offer): quantity is set, not
// added, and the purchase prices are re-stamped from the current snapshot.
func (q *Queries) UpsertOrderItem(ctx context.Context, arg UpsertOrderItemParams) (OrderItem, error) {
	row := q.db.QueryRow(ctx, upsertOrderItem, arg.SellerOrderID, arg.OfferID,
		arg.Quantity, arg.PurchasePrice, arg.PurchasePriceRrc)
	var i OrderItem
	err := row.Scan(&i.ID, &i.SellerOrderID, &i.OfferID, &i.Quantity,
		&i.PurchasePrice, &i.PurchasePriceRrc)
	return i, err
}

const deleteOrderItems = `-- name: DeleteOrderItems :exec
DELETE FROM order_items
WHERE id = ANY($1::bigint[])
`

func (q *Queries) DeleteOrderItems(ctx context.Context, ids []int64) error {
	_, err := q.db.Exec(ctx, deleteOrderItems, ids)
	return err
}
