package client

import (
	"context"
	"strconv"
	"strings"
)

// Resource is a typed REST collection such as /users or /wallets.
type Resource[T any] struct {
	client *Client
	path   string
}

func NewResource[T any](c *Client, path string) *Resource[T] {
	return &Resource[T]{
		client: c,
		path:   "/" + strings.Trim(path, "/"),
	}
}

func (r *Resource[T]) Path() string {
	return r.path
}

// List performs GET /{resource}.
func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.client.Get(ctx, r.path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get performs GET /{resource}/{id}.
func (r *Resource[T]) Get(ctx context.Context, id int64) (T, error) {
	var out T
	err := r.client.Get(ctx, r.item(id), &out)
	return out, err
}

// Create performs POST /{resource}.
func (r *Resource[T]) Create(ctx context.Context, record T) (T, error) {
	var out T
	err := r.client.Post(ctx, r.path, record, &out)
	return out, err
}

// Update performs a full replace with PUT /{resource}/{id}.
func (r *Resource[T]) Update(ctx context.Context, id int64, record T) (T, error) {
	var out T
	err := r.client.Put(ctx, r.item(id), record, &out)
	return out, err
}

// Patch performs PATCH /{resource}/{id} with a partial body.
func (r *Resource[T]) Patch(ctx context.Context, id int64, body any) (T, error) {
	var out T
	err := r.client.Patch(ctx, r.item(id), body, &out)
	return out, err
}

// Delete performs DELETE /{resource}/{id}.
func (r *Resource[T]) Delete(ctx context.Context, id int64) error {
	return r.client.Delete(ctx, r.item(id), nil)
}

func (r *Resource[T]) item(id int64) string {
	return r.path + "/" + strconv.FormatInt(id, 10)
}
