package icontact

import "context"

// Client defines the interface for iContact API operations
type Client interface {
	// Get retrieves a resource or collection
	Get(ctx context.Context, resource string, ids []string, params Params, opts ...CallOption) (interface{}, error)

	// Post creates resources, or updates the fields it is given
	Post(ctx context.Context, resource string, ids []string, params Params, opts ...CallOption) (interface{}, error)

	// Put replaces a resource
	Put(ctx context.Context, resource string, ids []string, params Params, opts ...CallOption) (interface{}, error)

	// Delete removes a resource
	Delete(ctx context.Context, resource string, ids []string, params Params, opts ...CallOption) (interface{}, error)

	ResourceURL(resource string, ids []string) string
}

var _ Client = (*IContact)(nil)
