package hcp

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gcp-hcp/gcphcp/internal/api"
	"github.com/gcp-hcp/gcphcp/internal/clierr"
	"github.com/gcp-hcp/gcphcp/internal/config"
)

type staticTokens struct{}

func (staticTokens) Token(context.Context) (string, error)   { return "tok", nil }
func (staticTokens) Refresh(context.Context) (string, error) { return "tok", nil }
func (staticTokens) AccountEmail() string                    { return "" }

func testService(t *testing.T, project string, handler http.Handler) *Service {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := api.New(&config.Config{
		APIEndpoint:   server.URL,
		Timeout:       5 * time.Second,
		RetryAttempts: 1,
	}, staticTokens{})
	if err != nil {
		t.Fatal(err)
	}
	return New(client, project)
}

// clusterFixtures serves a describe and list view over a fixed set of
// clusters.
func clusterFixtures(clusters string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/clusters", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"clusters":%s}`, clusters)
	})
	mux.HandleFunc("/api/v1/clusters/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/api/v1/clusters/")
		if strings.Contains(clusters, fmt.Sprintf(`"id":"%s"`, id)) {
			fmt.Fprintf(w, `{"id":"%s"}`, id)
			return
		}
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"detail":"not found"}`)
	})
	return mux
}

const fixtureClusters = `[
	{"id":"5bf0258c-41b9-4c1e-8f2d-000000000001","name":"web","status":"READY"},
	{"id":"5bf0a111-3333-4c1e-8f2d-000000000002","name":"batch","status":"CREATING"},
	{"id":"7777aaaa-bbbb-4ccc-8ddd-000000000003","name":"web-staging","status":"READY"}
]`

func TestResolveCluster(t *testing.T) {
	testCases := []struct {
		name       string
		identifier string
		wantID     string
		wantKind   clierr.Kind
	}{
		{
			name:       "full UUID resolves directly",
			identifier: "5bf0258c-41b9-4c1e-8f2d-000000000001",
			wantID:     "5bf0258c-41b9-4c1e-8f2d-000000000001",
		},
		{
			name:       "exact name",
			identifier: "web",
			wantID:     "5bf0258c-41b9-4c1e-8f2d-000000000001",
		},
		{
			name:       "unique ID prefix",
			identifier: "7777aaaa",
			wantID:     "7777aaaa-bbbb-4ccc-8ddd-000000000003",
		},
		{
			name:       "prefix is case-insensitive",
			identifier: "7777AAAA",
			wantID:     "7777aaaa-bbbb-4ccc-8ddd-000000000003",
		},
		{
			name:       "longer unique prefix",
			identifier: "5bf0258c-41",
			wantID:     "5bf0258c-41b9-4c1e-8f2d-000000000001",
		},
		{
			name:       "short prefix is not a lookup",
			identifier: "5bf0",
			wantKind:   clierr.NotFound,
		},
		{
			name:       "unknown identifier",
			identifier: "does-not-exist",
			wantKind:   clierr.NotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := testService(t, "proj", clusterFixtures(fixtureClusters))
			id, err := svc.ResolveCluster(context.Background(), tc.identifier)
			if tc.wantKind != 0 {
				if clierr.KindOf(err) != tc.wantKind {
					t.Errorf("kind = %v, want %v", clierr.KindOf(err), tc.wantKind)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if id != tc.wantID {
				t.Errorf("id = %q, want %q", id, tc.wantID)
			}
		})
	}
}

func TestResolveClusterAmbiguousPrefix(t *testing.T) {
	ambiguous := `[
		{"id":"aaaabbbb-1111-4000-8000-000000000001","name":"one"},
		{"id":"aaaabbbb-2222-4000-8000-000000000002","name":"two"}
	]`
	svc := testService(t, "proj", clusterFixtures(ambiguous))

	_, err := svc.ResolveCluster(context.Background(), "aaaabbbb")
	if clierr.KindOf(err) != clierr.Validation {
		t.Fatalf("kind = %v, want Validation", clierr.KindOf(err))
	}
	// The message lists every match so the user can pick one.
	for _, id := range []string{"aaaabbbb-1111", "aaaabbbb-2222"} {
		if !strings.Contains(err.Error(), id) {
			t.Errorf("ambiguity message missing %s: %v", id, err)
		}
	}
}

func TestResolveClusterUUIDNotOnServerFallsBack(t *testing.T) {
	// A syntactically valid UUID that the server doesn't know falls
	// back to the list search instead of failing outright.
	svc := testService(t, "proj", clusterFixtures(fixtureClusters))
	_, err := svc.ResolveCluster(context.Background(), "99999999-9999-4999-8999-999999999999")
	if clierr.KindOf(err) != clierr.NotFound {
		t.Errorf("kind = %v, want NotFound", clierr.KindOf(err))
	}
}

func TestRequireProject(t *testing.T) {
	svc := testService(t, "", http.NotFoundHandler())

	_, err := svc.requireProject("")
	if clierr.KindOf(err) != clierr.Validation {
		t.Errorf("kind = %v, want Validation", clierr.KindOf(err))
	}

	project, err := svc.requireProject("override")
	if err != nil || project != "override" {
		t.Errorf("override: project = %q, err = %v", project, err)
	}

	svc2 := testService(t, "configured", http.NotFoundHandler())
	project, err = svc2.requireProject("")
	if err != nil || project != "configured" {
		t.Errorf("configured: project = %q, err = %v", project, err)
	}
}

func TestListClustersQuery(t *testing.T) {
	var gotQuery map[string][]string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		fmt.Fprint(w, `{"clusters":[]}`)
	})
	svc := testService(t, "my-project", handler)

	_, err := svc.ListClusters(context.Background(), ClusterListOptions{Status: "READY", Offset: 10})
	if err != nil {
		t.Fatal(err)
	}
	if got := gotQuery["project"]; len(got) != 1 || got[0] != "my-project" {
		t.Errorf("project query = %v", got)
	}
	if got := gotQuery["status"]; len(got) != 1 || got[0] != "READY" {
		t.Errorf("status query = %v", got)
	}
	if got := gotQuery["offset"]; len(got) != 1 || got[0] != "10" {
		t.Errorf("offset query = %v", got)
	}
}
