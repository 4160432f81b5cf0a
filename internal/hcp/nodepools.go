package hcp

import (
	"context"
	"net/url"
	"strconv"

	"github.com/gcp-hcp/gcphcp/internal/api"
	"github.com/gcp-hcp/gcphcp/internal/clierr"
)

// NodePoolListOptions filters a nodepool listing. ClusterID narrows
// the listing to one owning cluster.
type NodePoolListOptions struct {
	ClusterID string
	Limit     int
}

// ListNodePools returns nodepools, following pagination in server
// order.
func (s *Service) ListNodePools(ctx context.Context, opts NodePoolListOptions) (*api.Result, error) {
	query := url.Values{}
	if opts.ClusterID != "" {
		query.Set("clusterId", opts.ClusterID)
	}
	return s.client.Execute(ctx, api.Request{
		Verb:  api.List,
		Kind:  api.NodePools,
		Query: query,
		Limit: opts.Limit,
	})
}

// NodePoolSpec collects the inputs for nodepool creation.
type NodePoolSpec struct {
	Name         string
	ClusterID    string
	Replicas     int
	InstanceType string
	DiskSize     int
	DiskType     string
	AutoRepair   bool
	Labels       map[string]string
	Taints       []Taint
}

// NodePoolPayload builds the create request body without sending it.
func (s *Service) NodePoolPayload(spec NodePoolSpec) (*api.Document, error) {
	if spec.Name == "" {
		return nil, clierr.New(clierr.Validation, "nodepool name is required")
	}
	if spec.ClusterID == "" {
		return nil, clierr.New(clierr.Validation, "cluster is required; use --cluster")
	}
	if spec.Replicas <= 0 {
		return nil, clierr.New(clierr.Validation, "replicas must be greater than 0")
	}

	gcp := api.NewDocument().
		Set("instanceType", spec.InstanceType).
		Set("rootVolume", api.NewDocument().
			Set("size", spec.DiskSize).
			Set("type", spec.DiskType))
	if len(spec.Labels) > 0 {
		gcp.Set("labels", spec.Labels)
	}
	if len(spec.Taints) > 0 {
		taints := make([]any, 0, len(spec.Taints))
		for _, t := range spec.Taints {
			taints = append(taints, api.NewDocument().
				Set("key", t.Key).
				Set("value", t.Value).
				Set("effect", t.Effect))
		}
		gcp.Set("taints", taints)
	}

	return api.NewDocument().
		Set("name", spec.Name).
		Set("cluster_id", spec.ClusterID).
		Set("spec", api.NewDocument().
			Set("replicas", spec.Replicas).
			Set("platform", api.NewDocument().
				Set("type", "GCP").
				Set("gcp", gcp)).
			Set("management", api.NewDocument().
				Set("autoRepair", spec.AutoRepair).
				Set("upgradeType", "Replace"))), nil
}

// CreateNodePool submits a new nodepool. Never retried.
func (s *Service) CreateNodePool(ctx context.Context, spec NodePoolSpec) (*api.Result, error) {
	body, err := s.NodePoolPayload(spec)
	if err != nil {
		return nil, err
	}
	return s.client.Execute(ctx, api.Request{
		Verb: api.Create,
		Kind: api.NodePools,
		Body: body,
	})
}

// DescribeNodePool fetches one nodepool by full ID.
func (s *Service) DescribeNodePool(ctx context.Context, id string) (*api.Result, error) {
	return s.client.Execute(ctx, api.Request{Verb: api.Describe, Kind: api.NodePools, ID: id})
}

// NodePoolUpdate carries only the fields the user explicitly provided.
type NodePoolUpdate struct {
	NodeCount    *int
	InstanceType *string
	AutoRepair   *bool
	Labels       map[string]string
}

// UpdateNodePool sends a partial update containing exactly the
// provided fields. Never retried.
func (s *Service) UpdateNodePool(ctx context.Context, id string, upd NodePoolUpdate) (*api.Result, error) {
	body := api.NewDocument()
	if upd.NodeCount != nil {
		body.Set("node_count", *upd.NodeCount)
	}
	if upd.InstanceType != nil {
		body.Set("instance_type", *upd.InstanceType)
	}
	if upd.AutoRepair != nil {
		body.Set("auto_repair", *upd.AutoRepair)
	}
	if upd.Labels != nil {
		body.Set("labels", upd.Labels)
	}
	if body.Len() == 0 {
		return nil, clierr.New(clierr.Validation, "no fields to update; provide at least one update flag")
	}
	return s.client.Execute(ctx, api.Request{
		Verb: api.Update,
		Kind: api.NodePools,
		ID:   id,
		Body: body,
	})
}

// DeleteNodePool removes a nodepool. Never retried.
func (s *Service) DeleteNodePool(ctx context.Context, id string) error {
	query := url.Values{}
	query.Set("force", "true")
	_, err := s.client.Execute(ctx, api.Request{
		Verb:  api.Delete,
		Kind:  api.NodePools,
		ID:    id,
		Query: query,
	})
	return err
}

// ResolveNodePool turns a name, ID prefix, or full UUID into a full
// nodepool ID, optionally scoped to one cluster.
func (s *Service) ResolveNodePool(ctx context.Context, identifier, clusterID string) (string, error) {
	var query map[string]string
	if clusterID != "" {
		query = map[string]string{"clusterId": clusterID}
	}
	return s.resolve(ctx, api.NodePools, identifier, query)
}

// NodePoolReplicas extracts the replica count from a nodepool document
// for confirmation messages. Both spec.replicas and spec.nodeCount are
// seen in the wild.
func NodePoolReplicas(doc *api.Document) int {
	raw, ok := doc.Get("spec")
	if !ok {
		return 0
	}
	spec, ok := raw.(*api.Document)
	if !ok {
		return 0
	}
	for _, key := range []string{"replicas", "nodeCount"} {
		if v := spec.String(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
	}
	return 0
}
