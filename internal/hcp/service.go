// Package hcp maps CLI verbs onto resource API requests for clusters
// and nodepools, including identifier resolution and request payload
// shaping.
package hcp

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/gcp-hcp/gcphcp/internal/api"
	"github.com/gcp-hcp/gcphcp/internal/clierr"
	"github.com/gcp-hcp/gcphcp/internal/logger"
)

// resolveSearchLimit bounds the list request used for name and
// partial-ID lookups.
const resolveSearchLimit = 100

// minPartialIDLength is the shortest ID prefix accepted for lookup.
const minPartialIDLength = 8

// Service issues cluster and nodepool operations.
type Service struct {
	client  *api.Client
	project string
	log     *slog.Logger
}

// New wraps an API client with the resolved default project.
func New(client *api.Client, project string) *Service {
	return &Service{
		client:  client,
		project: project,
		log:     logger.Get(),
	}
}

// Project returns the project the service operates in.
func (s *Service) Project() string { return s.project }

// requireProject fails locally, before any network round trip.
func (s *Service) requireProject(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if s.project != "" {
		return s.project, nil
	}
	return "", clierr.New(clierr.Validation,
		"project is required; use --project or set default_project in the config")
}

// resolve finds the full ID for an identifier that may be a UUID, an
// exact resource name, or a case-insensitive ID prefix of at least
// eight characters.
func (s *Service) resolve(ctx context.Context, kind api.Kind, identifier string, query map[string]string) (string, error) {
	if _, err := uuid.Parse(identifier); err == nil {
		_, err := s.client.Execute(ctx, api.Request{Verb: api.Describe, Kind: kind, ID: identifier})
		if err == nil {
			return identifier, nil
		}
		if clierr.KindOf(err) != clierr.NotFound {
			return "", err
		}
	}

	req := api.Request{Verb: api.List, Kind: kind, Limit: resolveSearchLimit}
	if len(query) > 0 {
		req.Query = make(map[string][]string, len(query))
		for k, v := range query {
			req.Query.Set(k, v)
		}
	}
	res, err := s.client.Execute(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to search %s: %w", kind.Path(), err)
	}

	for _, item := range res.Items() {
		if item.String("name") == identifier {
			return item.String("id"), nil
		}
	}

	var matches []*api.Document
	if len(identifier) >= minPartialIDLength {
		prefix := strings.ToLower(identifier)
		for _, item := range res.Items() {
			if strings.HasPrefix(strings.ToLower(item.String("id")), prefix) {
				matches = append(matches, item)
			}
		}
	}
	switch len(matches) {
	case 1:
		return matches[0].String("id"), nil
	case 0:
		return "", clierr.Newf(clierr.NotFound,
			"no %s found with identifier %q; use 'gcphcp %s list' to see available resources",
			singular(kind), identifier, kind.Path())
	default:
		lines := make([]string, 0, len(matches))
		for _, m := range matches {
			lines = append(lines, fmt.Sprintf("  %s (%s)", m.String("id"), m.String("name")))
		}
		return "", clierr.Newf(clierr.Validation,
			"multiple %s match %q:\n%s\nprovide a more specific identifier",
			kind.Path(), identifier, strings.Join(lines, "\n"))
	}
}

func singular(kind api.Kind) string {
	if kind == api.NodePools {
		return "nodepool"
	}
	return "cluster"
}
