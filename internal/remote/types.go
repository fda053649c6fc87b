package remote

type graphQLRequest struct {
	Query     string `json:"query"`
	Variables any    `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type messageResult struct {
	Message string `json:"message"`
}

type loginResult struct {
	Token string `json:"token"`
}

type graphQLData struct {
	Login           *loginResult   `json:"login,omitempty"`
	SaveOrder       *messageResult `json:"saveOrder,omitempty"`
	SaveConsignment *messageResult `json:"saveConsignment,omitempty"`
}

type graphQLResponse struct {
	Data   *graphQLData   `json:"data,omitempty"`
	Errors []graphQLError `json:"errors,omitempty"`
}

// ErrorMessages flattens the response's error array into plain strings.
func (r *graphQLResponse) ErrorMessages() []string {
	if len(r.Errors) == 0 {
		return nil
	}
	messages := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		messages[i] = e.Message
	}
	return messages
}
