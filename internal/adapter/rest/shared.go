package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"

	"github.com/eslsoft/studyhub/internal/adapter/mapping"
	"github.com/eslsoft/studyhub/internal/repository"
)

const (
	maxBodyBytes     = 1 << 20
	totalCountHeader = "X-Total-Count"
)

type errorBody struct {
	Detail string `json:"detail"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.WithError(err).Warn("write response body")
	}
}

func (h *Handler) writeList(w http.ResponseWriter, items any, total int64) {
	w.Header().Set(totalCountHeader, strconv.FormatInt(total, 10))
	h.writeJSON(w, http.StatusOK, items)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := mapping.Code(err)
	entry := h.logger.WithContext(r.Context()).WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
		"code":   code.String(),
	})
	if code == codes.Internal {
		entry.WithError(err).Error("request failed")
	} else {
		entry.WithError(err).Debug("request rejected")
	}
	h.writeJSON(w, mapping.HTTPStatus(err), errorBody{Detail: mapping.Message(err)})
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is required", mapping.ErrMalformedRequest)
		}
		return fmt.Errorf("%w: %v", mapping.ErrMalformedRequest, err)
	}
	return nil
}

func pathUUID(params map[string]string, name string, invalid error) (uuid.UUID, error) {
	id, err := uuid.Parse(params[name])
	if err != nil {
		return uuid.Nil, invalid
	}
	return id, nil
}

func queryInt(q url.Values, name string) (*int, error) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", mapping.ErrMalformedRequest, name)
	}
	return lo.ToPtr(v), nil
}

func queryBool(q url.Values, name string) (*bool, error) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a boolean", mapping.ErrMalformedRequest, name)
	}
	return lo.ToPtr(v), nil
}

func queryUUID(q url.Values, name string) (*uuid.UUID, error) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a UUID", mapping.ErrMalformedRequest, name)
	}
	return &v, nil
}

func (h *Handler) page(q url.Values) (repository.Pagination, error) {
	skip, err := queryInt(q, "skip")
	if err != nil {
		return repository.Pagination{}, err
	}
	limit, err := queryInt(q, "limit")
	if err != nil {
		return repository.Pagination{}, err
	}
	return h.limits.Page(skip, limit)
}

func filterOrder(q url.Values) repository.FilterOrder {
	return repository.FilterOrder{Filter: q.Get("filter"), OrderBy: q.Get("order_by")}
}
