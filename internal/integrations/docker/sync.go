package docker

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/docker/docker/api/types/events"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"bastion/internal/misc"
	"bastion/internal/service"
	"bastion/internal/types"
	"bastion/logger"
)

// AllowLabel marks a container whose ports should be opened in the
// firewall. The value is either "published", which opens every published
// port, or a comma-separated list of "port" / "port/proto" entries.
const AllowLabel = "bastion.allow"

type Sync struct {
	docker   Docker
	firewall service.FirewallService
}

// NewSync watches the docker daemon and opens ports for labeled containers.
// Rule idempotence in the firewall core makes repeated syncs safe. There is
// no teardown on container stop: the tool surface has no delete operation,
// so rules for stopped containers are left in place.
func NewSync(docker Docker, firewall service.FirewallService) *Sync {
	return &Sync{docker: docker, firewall: firewall}
}

func (s *Sync) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.syncRunning(ctx)
	})
	g.Go(func() error {
		return s.watch(ctx)
	})
	return g.Wait()
}

func (s *Sync) syncRunning(ctx context.Context) error {
	containers, err := s.docker.RunningContainers(ctx)
	if err != nil {
		return err
	}

	for _, info := range containers {
		s.applyRules(ctx, info)
	}
	return nil
}

func (s *Sync) watch(ctx context.Context) error {
	evChan, errChan := s.docker.ContainerEvents(ctx)
	for {
		select {
		case ev := <-evChan:
			s.handleEvent(ctx, ev)
		case err := <-errChan:
			if err != nil {
				logger.Error("container events error",
					zap.Error(err))
			}
			time.Sleep(100 * time.Millisecond)
			evChan, errChan = s.docker.ContainerEvents(ctx)
		case <-ctx.Done():
			logger.Info("stopping docker sync...")
			return nil
		}
	}
}

func (s *Sync) handleEvent(ctx context.Context, ev events.Message) {
	if string(ev.Action) != "start" {
		return
	}

	info, err := s.docker.InspectContainer(ctx, ev.Actor.ID)
	if err != nil {
		logger.Error("failed to inspect started container",
			zap.String("container", ev.Actor.ID),
			zap.Error(err))
		return
	}

	s.applyRules(ctx, info)
}

func (s *Sync) applyRules(ctx context.Context, info ContainerInfo) {
	for _, params := range RulesFor(info) {
		result, err := s.firewall.AddRule(ctx, params)
		if err != nil {
			logger.Error("failed to apply container rule",
				zap.String("container", info.Name),
				zap.String("target", params.Target),
				zap.Error(err))
			continue
		}

		logger.Info("container rule synced",
			zap.String("container", info.Name),
			zap.String("rule", result.Rule),
			zap.String("status", string(result.Status)))
	}
}

// RulesFor translates a container's allow label into rule parameters.
// Containers without the label are ignored.
func RulesFor(info ContainerInfo) []types.AddRuleParams {
	label, ok := info.Labels[AllowLabel]
	if !ok || strings.TrimSpace(label) == "" {
		return nil
	}

	var result []types.AddRuleParams
	if strings.TrimSpace(label) == "published" {
		for port := range info.Ports {
			result = append(result, types.AddRuleParams{
				Action:   string(types.ActionAllow),
				Target:   port.Port(),
				Protocol: port.Proto(),
			})
		}
		sort.Slice(result, func(i, j int) bool {
			return result[i].Target < result[j].Target
		})
		return result
	}

	for _, entry := range strings.Split(label, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		target, proto := entry, ""
		if i := strings.Index(entry, "/"); i >= 0 {
			target, proto = entry[:i], entry[i+1:]
		}
		if proto != "" && !misc.StrContains(proto, []string{"tcp", "udp"}) {
			logger.Warn("ignoring rule label entry with unknown protocol",
				zap.String("container", info.Name),
				zap.String("entry", entry))
			continue
		}

		result = append(result, types.AddRuleParams{
			Action:   string(types.ActionAllow),
			Target:   target,
			Protocol: proto,
		})
	}
	return result
}
