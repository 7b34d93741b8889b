package vision

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrProtocol marks a response in which the service ignored the forced
// structured-response mode. Distinct from ErrTransport: the call itself
// succeeded, the contract was violated.
var ErrProtocol = errors.New("service did not honor structured-response contract")

// ExtractToolInput searches the response content for the structured tool
// invocation with the given name and returns its input payload.
func ExtractToolInput(response *Response, toolName string) (json.RawMessage, error) {
	for _, block := range response.Content {
		if block.Type == "tool_use" && block.Name == toolName {
			return block.Input, nil
		}
	}
	return nil, fmt.Errorf("%w: no %s tool invocation in response", ErrProtocol, toolName)
}
