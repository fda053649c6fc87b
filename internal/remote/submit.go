package remote

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmallard/manifest/internal/pipeline"
)

// Success phrases recognized in the remote API's message field. Any other
// message, even without an explicit error, is a rejection.
var orderSuccessPhrases = []string{
	"Order saved successfully",
	"Order successfully saved",
}

var consignmentSuccessPhrases = []string{
	"Consignment added successfully",
	"Consignment successfully added",
}

// SaveOrder submits an order payload and returns the API's message when
// it matches a known success phrase.
func (c *client) SaveOrder(ctx context.Context, token string, payload *pipeline.OrderPayload) (string, error) {
	resp, err := c.post(ctx, token, saveOrderMutation, payload)
	if err != nil {
		return "", fmt.Errorf("save order: %w", err)
	}

	var message string
	if resp.Data != nil && resp.Data.SaveOrder != nil {
		message = resp.Data.SaveOrder.Message
	}

	if !successMessage(message, orderSuccessPhrases) {
		return "", rejection(resp, message)
	}

	c.logger.InfoContext(ctx, "order saved", "message", message)
	return message, nil
}

// SaveConsignment submits a consignment payload and returns the API's
// message when it matches a known success phrase.
func (c *client) SaveConsignment(ctx context.Context, token string, payload *pipeline.ConsignmentPayload) (string, error) {
	resp, err := c.post(ctx, token, saveConsignmentMutation, payload)
	if err != nil {
		return "", fmt.Errorf("save consignment: %w", err)
	}

	var message string
	if resp.Data != nil && resp.Data.SaveConsignment != nil {
		message = resp.Data.SaveConsignment.Message
	}

	if !successMessage(message, consignmentSuccessPhrases) {
		return "", rejection(resp, message)
	}

	c.logger.InfoContext(ctx, "consignment saved", "message", message)
	return message, nil
}

func successMessage(message string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(message, phrase) {
			return true
		}
	}
	return false
}
