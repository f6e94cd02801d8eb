package repos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RESTGateway talks to a hosted PostgREST-style backend
// (GET/POST/DELETE on /rest/v1/<table>).
type RESTGateway struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

func NewRESTGateway(baseURL, apiKey string, timeout time.Duration) *RESTGateway {
	return &RESTGateway{BaseURL: strings.TrimRight(baseURL, "/"), APIKey: apiKey, Timeout: timeout}
}

type restError struct {
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
	Code    string `json:"code"`
}

func (g *RESTGateway) endpoint(table string, params url.Values) string {
	u := g.BaseURL + "/rest/v1/" + table
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

func (g *RESTGateway) prepare(ctx context.Context, a *fiber.Agent) (*fiber.Agent, error) {
	if err := ctx.Err(); err != nil {
		fiber.ReleaseAgent(a)
		return nil, err
	}
	if g.APIKey != "" {
		a.Set("apikey", g.APIKey)
		a.Set(fiber.HeaderAuthorization, "Bearer "+g.APIKey)
	}
	a.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)

	timeout := g.Timeout
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); timeout == 0 || left < timeout {
			timeout = left
		}
	}
	if timeout > 0 {
		a.Timeout(timeout)
	}
	return a, nil
}

func filterParams(params url.Values, filters []Filter) {
	for _, f := range filters {
		params.Set(f.Column, "eq."+fmt.Sprint(f.Value))
	}
}

func (g *RESTGateway) do(op, table string, a *fiber.Agent) ([]byte, error) {
	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return nil, wrap(op, table, errors.Join(errs...))
	}
	if code >= fiber.StatusMultipleChoices {
		var re restError
		msg := strings.TrimSpace(string(body))
		if json.Unmarshal(body, &re) == nil && re.Message != "" {
			msg = re.Message
		}
		if msg == "" {
			msg = fmt.Sprintf("%s %s: status %d", op, table, code)
		}
		return nil, &GatewayError{Op: op, Table: table, Message: msg}
	}
	return body, nil
}

func (g *RESTGateway) Select(ctx context.Context, table string, dest any, q Query) error {
	if err := checkQuery(table, q); err != nil {
		return wrap("select", table, err)
	}
	cols, _ := tableColumns(table)

	params := url.Values{}
	params.Set("select", strings.Join(cols, ","))
	if len(q.Order) > 0 {
		parts := make([]string, 0, len(q.Order))
		for _, o := range q.Order {
			dir := "asc"
			if o.Desc {
				dir = "desc"
			}
			parts = append(parts, o.Column+"."+dir)
		}
		params.Set("order", strings.Join(parts, ","))
	}
	filterParams(params, q.Filters)

	a, err := g.prepare(ctx, fiber.Get(g.endpoint(table, params)))
	if err != nil {
		return wrap("select", table, err)
	}
	body, err := g.do("select", table, a)
	if err != nil {
		return err
	}
	return wrap("select", table, json.Unmarshal(body, dest))
}

func (g *RESTGateway) Insert(ctx context.Context, table string, row map[string]any) error {
	if _, err := rowKeys(table, row); err != nil {
		return wrap("insert", table, err)
	}
	a, err := g.prepare(ctx, fiber.Post(g.endpoint(table, nil)))
	if err != nil {
		return wrap("insert", table, err)
	}
	a.Set("Prefer", "return=minimal")
	a.JSON(row)
	_, err = g.do("insert", table, a)
	return err
}

func (g *RESTGateway) Delete(ctx context.Context, table string, filters ...Filter) error {
	if _, err := tableColumns(table); err != nil {
		return wrap("delete", table, err)
	}
	if len(filters) == 0 {
		return wrap("delete", table, errors.New("delete without a filter is not allowed"))
	}
	if err := checkFilters(table, filters); err != nil {
		return wrap("delete", table, err)
	}
	params := url.Values{}
	filterParams(params, filters)
	a, err := g.prepare(ctx, fiber.Delete(g.endpoint(table, params)))
	if err != nil {
		return wrap("delete", table, err)
	}
	_, err = g.do("delete", table, a)
	return err
}
