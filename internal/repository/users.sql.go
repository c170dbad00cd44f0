package repository

import (
	"context"
)

const getUserByToken = `-- name: GetUserByToken :one
SELECT u.id, u.email, u.first_name, u.last_name, u.type
FROM users u
JOIN auth_tokens t ON t.user_id = u.id
WHERE t.key = $1
`

func (q *Queries) GetUserByToken(ctx context.Context, key string) (User, error) {
	row := q.db.QueryRow(ctx, getUserByToken, key)
	var i User
	err := row.Scan(&i.ID, &i.Email, &i.FirstName, &i.LastName, &i.Type)
	return i, err
}

const getUserByID = `-- name: GetUserByID :one
SELECT id, email, first_name, last_name, type
FROM users
WHERE id = $1
`

func (q *Queries) GetUserByID(ctx context.Context, id int64) (User, error) {
	row := q.db.QueryRow(ctx, getUserByID, id)
	var i User
	err := row.Scan(&i.ID, &i.Email, &i.FirstName, &i.LastName, &i.Type)
	return i, err
}

const getContact = `-- name: GetContact :one
SELECT id, user_id, city, street, house, structure, building, apartment, phone, is_deleted
FROM contacts
WHERE id = $1 AND user_id = $2 AND NOT is_deleted
`

type GetContactParams struct {
	ID     int64
	UserID int64
}

func (q *Queries) GetContact(ctx context.Context, arg GetContactParams) (Contact, error) {
	row := q.db.QueryRow(ctx, getContact, arg.ID, arg.UserID)
	var i Contact
	err := row.Scan(&i.ID, &i.UserID, &i.City, &i.Street, &i.House, &i.Structure,
		&i.Building, &i.Apartment, &i.Phone, &i.IsDeleted)
	return i, err
}

const getContactByID = `-- name: GetContactByID :one
SELECT id, user_id, city, street, house, structure, building, apartment, phone, is_deleted
FROM contacts
WHERE id = $1
`

func (q *Queries) GetContactByID(ctx context.Context, id int64) (Contact, error) {
	row := q.db.QueryRow(ctx, getContactByID, id)
	var i Contact
	err := row.Scan(&i.ID, &i.UserID, &i.City, &i.Street, &i.House, &i.Structure,
		&i.Building, &i.Apartment, &i.Phone, &i.IsDeleted)
	return i, err
}

const listContacts = `-- name: ListContacts :many
SELECT id, user_id, city, street, house, structure, building, apartment, phone, is_deleted
FROM contacts
WHERE user_id = $1 AND NOT is_deleted
ORDER BY id
`

func (q *Queries) ListContacts(ctx context.Context, userID int64) ([]Contact, error) {
	rows, err := q.db.Query(ctx, listContacts, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Contact
	for rows.Next() {
		var i Contact
		if err := rows.Scan(&i.ID, &i.UserID, &i.City, &i.Street, &i.House, &i.Structure,
			&i.Building, &i.Apartment, &i.Phone, &i.IsDeleted); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const createContact = `-- name: CreateContact :one
INSERT INTO contacts (user_id, city, street, house, structure, building, apartment, phone)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, user_id, city, street, house, structure, building, apartment, phone, is_deleted
`

type CreateContactParams struct {
	UserID    int64
	City      string
	Street    string
	House     string
	Structure string
	Building  string
	Apartment string
	Phone     string
}

func (q *Queries) CreateContact(ctx context.Context, arg CreateContactParams) (Contact, error) {
	row := q.db.QueryRow(ctx, createContact, arg.UserID, arg.City, arg.Street, arg.House,
		arg.Structure, arg.Building, arg.Apartment, arg.Phone)
	var i Contact
	err := row.Scan(&i.ID, &i.UserID, &i.City, &i.Street, &i.House, &i.Structure,
		&i.Building, &i.Apartment, &i.Phone, &i.IsDeleted)
	return i, err
}

const updateContact = `-- name: UpdateContact :one
UPDATE contacts
SET city = $3, street = $4, house = $5, structure = $6, building = $7, apartment = $8, phone = $9
WHERE id = $1 AND user_id = $2 AND NOT is_deleted
RETURNING id, user_id, city, street, house, structure, building, apartment, phone, is_deleted
`

type UpdateContactParams struct {
	ID        int64
	UserID    int64
	City      string
	Street    string
	House     string
	Structure string
	Building  string
	Apartment string
	Phone     string
}

func (q *Queries) UpdateContact(ctx context.Context, arg UpdateContactParams) (Contact, error) {
	row := q.db.QueryRow(ctx, updateContact, arg.ID, arg.UserID, arg.City, arg.Street,
		arg.House, arg.Structure, arg.Building, arg.Apartment, arg.Phone)
	var i Contact
	err := row.Scan(&i.ID, &i.UserID, &i.City, &i.Street, &i.House, &i.Structure,
		&i.Building, &i.Apartment, &i.Phone, &i.IsDeleted)
	return i, err
}

const softDeleteContact = `-- name: SoftDeleteContact :execrows
UPDATE contacts
SET is_deleted = TRUE
WHERE id = $1 AND user_id = $2 AND NOT is_deleted
`

type SoftDeleteContactParams struct {
	ID     int64
	UserID int64
}

func (q *Queries) SoftDeleteContact(ctx context.Context, arg SoftDeleteContactParams) (int64, error) {
	tag, err := q.db.Exec(ctx, softDeleteContact, arg.ID, arg.UserID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const countContactOrders = `-- name: CountContactOrders :one
SELECT COUNT(*) FROM seller_orders WHERE contact_id = $1
`

func (q *Queries) CountContactOrders(ctx context.Context, contactID int64) (int64, error) {
	row := q.db.QueryRow(ctx, countContactOrders, contactID)
	var count int64
	err := row.Scan(&count)
	return count, err
}
