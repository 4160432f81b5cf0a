package hcp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/gcp-hcp/gcphcp/internal/api"
	"github.com/gcp-hcp/gcphcp/internal/clierr"
)

// ClusterListOptions filters a cluster listing.
type ClusterListOptions struct {
	Status string
	Limit  int
	Offset int
}

// ListClusters returns clusters in the configured project, following
// pagination in server order.
func (s *Service) ListClusters(ctx context.Context, opts ClusterListOptions) (*api.Result, error) {
	query := url.Values{}
	if s.project != "" {
		query.Set("project", s.project)
	}
	if opts.Status != "" {
		query.Set("status", opts.Status)
	}
	if opts.Offset > 0 {
		query.Set("offset", strconv.Itoa(opts.Offset))
	}
	return s.client.Execute(ctx, api.Request{
		Verb:  api.List,
		Kind:  api.Clusters,
		Query: query,
		Limit: opts.Limit,
	})
}

// ClusterSpec collects the inputs for cluster creation. IAMConfigFile
// and SigningKeyFile are outputs of external infrastructure
// provisioning; when given, their contents fold into the platform spec.
type ClusterSpec struct {
	Name           string
	Project        string
	Region         string
	Description    string
	InfraID        string
	IAMConfigFile  string
	SigningKeyFile string
}

// ClusterPayload builds the create request body without sending it.
// Used directly by --dry-run.
func (s *Service) ClusterPayload(spec ClusterSpec) (*api.Document, error) {
	project, err := s.requireProject(spec.Project)
	if err != nil {
		return nil, err
	}
	if spec.Name == "" {
		return nil, clierr.New(clierr.Validation, "cluster name is required")
	}
	infraID := spec.InfraID
	if infraID == "" {
		infraID = spec.Name
	}

	gcp := api.NewDocument().
		Set("projectID", project).
		Set("region", spec.Region)

	if spec.IAMConfigFile != "" {
		wif, fileInfraID, err := loadWIFConfig(spec.IAMConfigFile)
		if err != nil {
			return nil, err
		}
		if fileInfraID != "" {
			infraID = fileInfraID
		}
		gcp.Set("workloadIdentity", wif)
	}

	specDoc := api.NewDocument().
		Set("infraID", infraID).
		Set("issuerURL", fmt.Sprintf("https://hypershift-%s-oidc", infraID))

	if spec.SigningKeyFile != "" {
		pem, err := os.ReadFile(spec.SigningKeyFile)
		if err != nil {
			return nil, clierr.Wrap(clierr.Validation,
				fmt.Sprintf("cannot read signing key file %s", spec.SigningKeyFile), err)
		}
		specDoc.Set("serviceAccountSigningKey", base64.StdEncoding.EncodeToString(pem))
	}

	specDoc.Set("platform", api.NewDocument().
		Set("type", "GCP").
		Set("gcp", gcp))

	body := api.NewDocument().
		Set("name", spec.Name).
		Set("target_project_id", project).
		Set("spec", specDoc)
	if spec.Description != "" {
		body.Set("description", spec.Description)
	}
	return body, nil
}

// CreateCluster submits a new cluster. Never retried.
func (s *Service) CreateCluster(ctx context.Context, spec ClusterSpec) (*api.Result, error) {
	body, err := s.ClusterPayload(spec)
	if err != nil {
		return nil, err
	}
	return s.client.Execute(ctx, api.Request{
		Verb: api.Create,
		Kind: api.Clusters,
		Body: body,
	})
}

// DescribeCluster fetches one cluster by full ID.
func (s *Service) DescribeCluster(ctx context.Context, id string) (*api.Result, error) {
	return s.client.Execute(ctx, api.Request{Verb: api.Describe, Kind: api.Clusters, ID: id})
}

// ClusterStatus fetches the controller status detail for a cluster.
func (s *Service) ClusterStatus(ctx context.Context, id string) (*api.Result, error) {
	return s.client.Execute(ctx, api.Request{Verb: api.Status, Kind: api.Clusters, ID: id})
}

// ClusterUpdate carries only the fields the user explicitly provided.
// Nil fields stay out of the request body so server-side values are
// never reset unintentionally.
type ClusterUpdate struct {
	Description *string
	Region      *string
}

// UpdateCluster sends a partial update. Never retried.
func (s *Service) UpdateCluster(ctx context.Context, id string, upd ClusterUpdate) (*api.Result, error) {
	body := api.NewDocument()
	if upd.Description != nil {
		body.Set("description", *upd.Description)
	}
	if upd.Region != nil {
		body.Set("region", *upd.Region)
	}
	if body.Len() == 0 {
		return nil, clierr.New(clierr.Validation, "no fields to update; provide at least one update flag")
	}
	return s.client.Execute(ctx, api.Request{
		Verb: api.Update,
		Kind: api.Clusters,
		ID:   id,
		Body: body,
	})
}

// DeleteCluster removes a cluster. The API requires force=true for
// actual deletion. Never retried.
func (s *Service) DeleteCluster(ctx context.Context, id string) error {
	query := url.Values{}
	query.Set("force", "true")
	_, err := s.client.Execute(ctx, api.Request{
		Verb:  api.Delete,
		Kind:  api.Clusters,
		ID:    id,
		Query: query,
	})
	return err
}

// ResolveCluster turns a name, ID prefix, or full UUID into a full
// cluster ID.
func (s *Service) ResolveCluster(ctx context.Context, identifier string) (string, error) {
	return s.resolve(ctx, api.Clusters, identifier, nil)
}

// loadWIFConfig reads the workload identity configuration JSON written
// by infrastructure provisioning and reshapes it into the cluster spec
// form.
func loadWIFConfig(path string) (*api.Document, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", clierr.Wrap(clierr.Validation,
			fmt.Sprintf("cannot read IAM config file %s", path), err)
	}
	var cfg struct {
		ProjectNumber        json.Number `json:"projectNumber"`
		InfraID              string      `json:"infraId"`
		WorkloadIdentityPool struct {
			PoolID     string `json:"poolId"`
			ProviderID string `json:"providerId"`
		} `json:"workloadIdentityPool"`
		ServiceAccounts map[string]string `json:"serviceAccounts"`
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, "", clierr.Wrap(clierr.Validation,
			fmt.Sprintf("IAM config file %s is not valid JSON", path), err)
	}

	wif := api.NewDocument().
		Set("projectNumber", cfg.ProjectNumber).
		Set("poolID", cfg.WorkloadIdentityPool.PoolID).
		Set("providerID", cfg.WorkloadIdentityPool.ProviderID).
		Set("serviceAccountsRef", api.NewDocument().
			Set("controlPlaneEmail", cfg.ServiceAccounts["ctrlplane-op"]).
			Set("nodePoolEmail", cfg.ServiceAccounts["nodepool-mgmt"]))
	return wif, cfg.InfraID, nil
}
