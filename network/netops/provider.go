// Copyright Amazon.com Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"). You may
// not use this file except in compliance with the License. A copy of the
// License is located at
//
//	http://aws.amazon.com/apache2.0/
//
// or in the "license" file accompanying this file. This file is distributed
// on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either
// express or implied. See the License for the specific language governing
// permissions and limitations under the License.

// Package netops provides the low-level Linux networking operations consumed
// by the lifecycle managers. The Provider is a stateless command executor: it
// carries no topology knowledge and every operation either succeeds or fails
// outright.
package netops

//go:generate mockgen -destination=mocks/mock_provider.go -package=mock_netops github.com/vpclab/vpcctl/network/netops Provider

// Provider executes primitive networking operations on the host.
type Provider interface {
	// CreateBridge creates a bridge device and brings it up.
	// Equivalent to: `ip link add $name type bridge && ip link set $name up`
	CreateBridge(name string) error
	// DeleteBridge brings a bridge down and deletes it. Tolerates a bridge
	// that is already absent.
	DeleteBridge(name string) error
	// CreateNamespace creates a named network namespace.
	// Equivalent to: `ip netns add $id`
	CreateNamespace(id string) error
	// DeleteNamespace deletes a named network namespace. Tolerates a
	// namespace that is already absent.
	DeleteNamespace(id string) error
	// CreateLinkPair creates a veth pair and brings both ends up. If the
	// pair already exists it is reused.
	// Equivalent to: `ip link add $endA type veth peer name $endB`
	CreateLinkPair(endA, endB string) error
	// DeleteLinkPair deletes a veth pair given either of its ends.
	// Tolerates a pair that is already absent.
	DeleteLinkPair(end string) error
	// AttachToBridge sets the bridge as the master of the given link end.
	// Equivalent to: `ip link set $end master $bridge`
	AttachToBridge(bridge, end string) error
	// MoveToNamespace moves a link end into a network namespace.
	// Equivalent to: `ip link set $end netns $namespaceID`
	MoveToNamespace(end, namespaceID string) error
	// AssignAddress assigns an address to a link end inside a namespace and
	// brings the end up.
	AssignAddress(namespaceID, end, cidrAddress string) error
	// AssignBridgeAddress assigns an address to a bridge. Bridges accept one
	// address per subnet; a duplicate address is tolerated.
	AssignBridgeAddress(bridge, cidrAddress string) error
	// RemoveBridgeAddress removes an address from a bridge. Tolerates an
	// address that is already absent.
	RemoveBridgeAddress(bridge, cidrAddress string) error
	// AddDefaultRoute installs the default route inside a namespace,
	// replacing any existing default route.
	AddDefaultRoute(namespaceID, gateway string) error
	// AddRoute installs a route toward a destination block inside a
	// namespace.
	AddRoute(namespaceID, destinationBlock, gateway string) error
	// AddBridgeRoute installs a route toward a destination block in the root
	// namespace, scoped to a bridge device.
	AddBridgeRoute(bridge, destinationBlock, gateway string) error
	// SetLoopbackUp brings the loopback interface up inside a namespace.
	SetLoopbackUp(namespaceID string) error
	// EnableForwarding enables IP forwarding on the host. Idempotent.
	EnableForwarding() error
	// SetupNAT installs masquerading toward the internet interface for
	// exactly the given source blocks, plus the forwarding accepts between
	// the bridge and the internet interface.
	SetupNAT(bridge, internetInterface string, publicBlocks []string) error
	// CleanupNAT removes the rules installed by SetupNAT for the same
	// arguments. Tolerates rules that are already absent.
	CleanupNAT(bridge, internetInterface string, publicBlocks []string) error
	// InstallIsolation installs a bidirectional drop of forwarded traffic
	// between two bridges. Idempotent.
	InstallIsolation(bridgeA, bridgeB string) error
	// RemoveIsolation removes the rules installed by InstallIsolation.
	// Tolerates rules that are already absent.
	RemoveIsolation(bridgeA, bridgeB string) error
	// ApplyFirewallDirective appends an inbound firewall rule inside a
	// namespace. A port of zero applies the rule to all ports of the
	// protocol. Directives accumulate; the caller owns dedup semantics.
	ApplyFirewallDirective(namespaceID, protocol string, port int, action string) error
	// RunInNamespace runs a shell command inside a namespace and returns its
	// combined output.
	RunInNamespace(namespaceID, command string) (string, error)
}
