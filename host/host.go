// Package host defines the narrow contract between the static website
// component and the orchestration tool that drives it. The host owns resource
// provisioning, stack-output storage, and error reporting; the component only
// consumes identifiers and publishes commands, computed outputs, and
// lifecycle hooks back to the host.
package host

import "context"

// StackOutputs resolves identifiers published at resource-provisioning time.
// The second return value reports whether the output exists at all; an
// absent output is not an error (resources may simply not be deployed yet).
type StackOutputs interface {
	GetOutput(ctx context.Context, name string) (value string, ok bool, err error)
}

// Command is a host-invocable operation exposed by a component.
type Command func(ctx context.Context) error

// OutputResolver computes a component output on demand. A nil string pointer
// means the output cannot be resolved yet (e.g. resources never provisioned).
type OutputResolver func(ctx context.Context) (*string, error)

// Component is the capability set a deployable component exposes to the
// host orchestration tool. The host calls these by contract; components
// never register themselves into a global registry.
type Component interface {
	// Commands returns host-invocable operations keyed by command name.
	Commands() map[string]Command

	// Outputs returns on-demand computed outputs keyed by output name.
	Outputs() map[string]OutputResolver

	// References returns identifiers of internal resources other components
	// may depend on. Leaf components return an empty map.
	References() map[string]string

	// PostDeploy runs after the host has provisioned the component's
	// resources. It must be idempotent.
	PostDeploy(ctx context.Context) error

	// PreRemove runs before the host tears the component's resources down.
	// It must be idempotent.
	PreRemove(ctx context.Context) error
}

// Context carries the ambient identifiers the host provides to components
// for namespacing generated resource names.
type Context struct {
	// StackName is the name of the stack the component belongs to.
	StackName string

	// Region is the cloud region the stack is deployed in.
	Region string
}

// StaticOutputs is a StackOutputs backed by a fixed map. The host uses it
// when outputs are already materialized; tests use it as a trivial fake.
type StaticOutputs map[string]string

// GetOutput implements StackOutputs.
func (s StaticOutputs) GetOutput(_ context.Context, name string) (string, bool, error) {
	v, ok := s[name]
	return v, ok, nil
}
