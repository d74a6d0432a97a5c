package mail

import (
	"context"
	"errors"
)

// MaxBatch caps the number of ids a single batch call accepts.
const MaxBatch = 100

func validateBatch(ids []string) error {
	if len(ids) == 0 {
		return validationError("at least one message id is required")
	}
	if len(ids) > MaxBatch {
		return validationError("at most %d message ids per batch, got %d", MaxBatch, len(ids))
	}
	return nil
}

// batch applies op to every id in order. A failing id does not stop the
// others and nothing is rolled back.
func batch(ids []string, op func(id string) error) []BatchResult {
	results := make([]BatchResult, 0, len(ids))
	for _, id := range ids {
		result := BatchResult{ID: id, Success: true}
		if err := op(id); err != nil {
			result.Success = false
			result.Error = err.Error()
		}
		results = append(results, result)
	}
	return results
}

func (c *Client) BatchMarkRead(ctx context.Context, ids []string, read bool) ([]BatchResult, error) {
	if err := validateBatch(ids); err != nil {
		return nil, err
	}
	return batch(ids, func(id string) error {
		return c.MarkRead(ctx, id, read)
	}), nil
}

func (c *Client) BatchSetFlagged(ctx context.Context, ids []string, flagged bool) ([]BatchResult, error) {
	if err := validateBatch(ids); err != nil {
		return nil, err
	}
	return batch(ids, func(id string) error {
		return c.SetFlagged(ctx, id, flagged)
	}), nil
}

func (c *Client) BatchDelete(ctx context.Context, ids []string) ([]BatchResult, error) {
	if err := validateBatch(ids); err != nil {
		return nil, err
	}
	return batch(ids, func(id string) error {
		return c.DeleteMessage(ctx, id)
	}), nil
}

// BatchMove resolves the destination once and moves every id there. If the
// destination cannot be resolved every id is reported with that failure.
func (c *Client) BatchMove(ctx context.Context, ids []string, mailbox, account string) ([]BatchResult, error) {
	if err := validateBatch(ids); err != nil {
		return nil, err
	}
	account, mailbox, err := c.resolveDestination(ctx, mailbox, account)
	if errors.Is(err, ErrValidation) {
		return nil, err
	}
	if err != nil {
		return batch(ids, func(string) error { return err }), nil
	}
	return batch(ids, func(id string) error {
		id, err := validateID(id)
		if err != nil {
			return err
		}
		return c.move(ctx, id, mailbox, account)
	}), nil
}
