package docker

import (
	"context"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/events"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"bastion/logger"
)

type (
	// Docker is the narrow slice of the docker API the firewall sync needs.
	Docker interface {
		RunningContainers(ctx context.Context) ([]ContainerInfo, error)
		InspectContainer(ctx context.Context, id string) (ContainerInfo, error)
		ContainerEvents(ctx context.Context) (<-chan events.Message, <-chan error)
	}

	ContainerInfo struct {
		ID     string
		Name   string
		Labels map[string]string
		Ports  nat.PortMap
	}

	dockerClient struct {
		hostClient client.APIClient
	}
)

func NewClient() (Docker, error) {
	hostClient, err := client.NewClientWithOpts(client.FromEnv,
		client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, err
	}

	p, err := hostClient.Ping(context.Background())
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to docker host")
	}

	logger.Info("docker client connected",
		zap.String("api_version", p.APIVersion))
	return &dockerClient{hostClient: hostClient}, nil
}

func (d *dockerClient) RunningContainers(ctx context.Context) ([]ContainerInfo, error) {
	list, err := d.hostClient.ContainerList(ctx, container.ListOptions{})
	if err != nil {
		return nil, err
	}

	result := make([]ContainerInfo, 0, len(list))
	for _, next := range list {
		info, err := d.InspectContainer(ctx, next.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, info)
	}
	return result, nil
}

func (d *dockerClient) InspectContainer(ctx context.Context, id string) (ContainerInfo, error) {
	resp, err := d.hostClient.ContainerInspect(ctx, id)
	if err != nil {
		return ContainerInfo{}, err
	}

	info := ContainerInfo{
		ID:   resp.ID,
		Name: resp.Name,
	}
	if resp.Config != nil {
		info.Labels = resp.Config.Labels
	}
	if resp.NetworkSettings != nil {
		info.Ports = resp.NetworkSettings.Ports
	}
	return info, nil
}

func (d *dockerClient) ContainerEvents(ctx context.Context) (<-chan events.Message, <-chan error) {
	args := filters.NewArgs(filters.Arg("type", "container"))
	return d.hostClient.Events(ctx, events.ListOptions{
		Filters: args,
	})
}
