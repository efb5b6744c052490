package service

import (
	"context"

	"github.com/Carma123/Mental-Health-Support-System/internal"
	"github.com/Carma123/Mental-Health-Support-System/internal/api"
)

// ResourceList holds the curated resource library. Read-only, no session
// required.
type ResourceList struct {
	listState
	client    *api.Client
	logger    internal.Logger
	resources []internal.Resource
}

func NewResourceList(client *api.Client, logger internal.Logger) *ResourceList {
	return &ResourceList{client: client, logger: logger}
}

func (l *ResourceList) Refresh(ctx context.Context) error {
	l.startLoading()
	defer l.stopLoading()

	resources, err := l.client.ListResources(ctx)
	if err != nil {
		l.logger.Errorf("resources: refresh failed: %v", err)
		l.setError("Failed to fetch resources")
		return err
	}

	l.mu.Lock()
	l.resources = resources
	l.errMsg = ""
	l.mu.Unlock()
	return nil
}

func (l *ResourceList) Resources() []internal.Resource {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]internal.Resource, len(l.resources))
	copy(out, l.resources)
	return out
}
