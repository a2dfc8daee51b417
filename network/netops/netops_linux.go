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

package netops

import (
	"net"
	"os"
	"os/exec"
	"strconv"

	log "github.com/cihub/seelog"
	"github.com/coreos/go-iptables/iptables"
	"github.com/pkg/errors"
	"github.com/vishvananda/netlink"
	"github.com/vishvananda/netns"
)

const ipForwardPath = "/proc/sys/net/ipv4/ip_forward"

type linuxProvider struct {
	ipt *iptables.IPTables
}

// NewProvider creates a Provider backed by netlink, named network namespaces
// and iptables.
func NewProvider() (Provider, error) {
	ipt, err := iptables.New()
	if err != nil {
		return nil, errors.Wrap(err, "unable to initialize iptables")
	}

	return &linuxProvider{ipt: ipt}, nil
}

func (p *linuxProvider) CreateBridge(name string) error {
	log.Infof("Creating bridge %s.", name)

	la := netlink.NewLinkAttrs()
	la.Name = name
	bridge := &netlink.Bridge{LinkAttrs: la}

	if err := netlink.LinkAdd(bridge); err != nil {
		return errors.Wrapf(err, "failed to create bridge %s", name)
	}

	if err := netlink.LinkSetUp(bridge); err != nil {
		return errors.Wrapf(err, "failed to bring up bridge %s", name)
	}

	return nil
}

func (p *linuxProvider) DeleteBridge(name string) error {
	log.Infof("Deleting bridge %s.", name)

	link, err := netlink.LinkByName(name)
	if err != nil {
		if _, ok := err.(netlink.LinkNotFoundError); ok {
			log.Debugf("Bridge %s is already absent.", name)
			return nil
		}
		return errors.Wrapf(err, "failed to find bridge %s", name)
	}

	// Best effort, the link is deleted right after.
	_ = netlink.LinkSetDown(link)

	if err := netlink.LinkDel(link); err != nil {
		return errors.Wrapf(err, "failed to delete bridge %s", name)
	}

	return nil
}

func (p *linuxProvider) CreateNamespace(id string) error {
	log.Infof("Creating network namespace %s.", id)

	return inLockedThread(func(origin netns.NsHandle) error {
		// NewNamed switches the calling thread into the new namespace.
		handle, err := netns.NewNamed(id)
		if err != nil {
			return errors.Wrapf(err, "failed to create namespace %s", id)
		}
		handle.Close()

		if err := netns.Set(origin); err != nil {
			return errors.Wrap(err, "failed to return to the host namespace")
		}

		return nil
	})
}

func (p *linuxProvider) DeleteNamespace(id string) error {
	log.Infof("Deleting network namespace %s.", id)

	if err := netns.DeleteNamed(id); err != nil {
		if os.IsNotExist(err) {
			log.Debugf("Namespace %s is already absent.", id)
			return nil
		}
		return errors.Wrapf(err, "failed to delete namespace %s", id)
	}

	return nil
}

func (p *linuxProvider) CreateLinkPair(endA, endB string) error {
	log.Infof("Creating veth pair %s/%s.", endA, endB)

	la := netlink.NewLinkAttrs()
	la.Name = endA
	veth := &netlink.Veth{LinkAttrs: la, PeerName: endB}

	if err := netlink.LinkAdd(veth); err != nil {
		if !os.IsExist(err) {
			return errors.Wrapf(err, "failed to create veth pair %s/%s", endA, endB)
		}

		// The pair is derived deterministically, so an existing pair with
		// both ends present is a previous invocation's and can be reused.
		if _, err := netlink.LinkByName(endA); err != nil {
			return errors.Wrapf(err, "link %s exists but is not usable", endA)
		}
		if _, err := netlink.LinkByName(endB); err != nil {
			return errors.Wrapf(err, "link %s exists but its peer %s is missing", endA, endB)
		}
		log.Infof("Reusing existing veth pair %s/%s.", endA, endB)
	}

	for _, name := range []string{endA, endB} {
		link, err := netlink.LinkByName(name)
		if err != nil {
			return errors.Wrapf(err, "failed to find veth end %s", name)
		}
		if err := netlink.LinkSetUp(link); err != nil {
			return errors.Wrapf(err, "failed to bring up veth end %s", name)
		}
	}

	return nil
}

func (p *linuxProvider) DeleteLinkPair(end string) error {
	log.Infof("Deleting veth pair via end %s.", end)

	link, err := netlink.LinkByName(end)
	if err != nil {
		if _, ok := err.(netlink.LinkNotFoundError); ok {
			log.Debugf("Veth end %s is already absent.", end)
			return nil
		}
		return errors.Wrapf(err, "failed to find veth end %s", end)
	}

	if err := netlink.LinkDel(link); err != nil {
		return errors.Wrapf(err, "failed to delete veth end %s", end)
	}

	return nil
}

func (p *linuxProvider) AttachToBridge(bridge, end string) error {
	log.Infof("Attaching %s to bridge %s.", end, bridge)

	link, err := netlink.LinkByName(end)
	if err != nil {
		return errors.Wrapf(err, "failed to find link %s", end)
	}

	master, err := netlink.LinkByName(bridge)
	if err != nil {
		return errors.Wrapf(err, "failed to find bridge %s", bridge)
	}

	if err := netlink.LinkSetMaster(link, master); err != nil {
		return errors.Wrapf(err, "failed to attach %s to bridge %s", end, bridge)
	}

	return nil
}

func (p *linuxProvider) MoveToNamespace(end, namespaceID string) error {
	log.Infof("Moving %s to namespace %s.", end, namespaceID)

	link, err := netlink.LinkByName(end)
	if err != nil {
		return errors.Wrapf(err, "failed to find link %s", end)
	}

	ns, err := netns.GetFromName(namespaceID)
	if err != nil {
		return errors.Wrapf(err, "failed to find namespace %s", namespaceID)
	}
	defer ns.Close()

	if err := netlink.LinkSetNsFd(link, int(ns)); err != nil {
		return errors.Wrapf(err, "failed to move %s to namespace %s", end, namespaceID)
	}

	return nil
}

func (p *linuxProvider) AssignAddress(namespaceID, end, cidrAddress string) error {
	log.Infof("Assigning %s to %s in namespace %s.", cidrAddress, end, namespaceID)

	addr, err := netlink.ParseAddr(cidrAddress)
	if err != nil {
		return errors.Wrapf(err, "invalid address %q", cidrAddress)
	}

	handle, ns, err := handleInNamespace(namespaceID)
	if err != nil {
		return err
	}
	defer ns.Close()
	defer handle.Close()

	link, err := handle.LinkByName(end)
	if err != nil {
		return errors.Wrapf(err, "failed to find link %s in namespace %s", end, namespaceID)
	}

	if err := handle.AddrAdd(link, addr); err != nil {
		return errors.Wrapf(err, "failed to assign %s to %s", cidrAddress, end)
	}

	if err := handle.LinkSetUp(link); err != nil {
		return errors.Wrapf(err, "failed to bring up %s in namespace %s", end, namespaceID)
	}

	return nil
}

func (p *linuxProvider) AssignBridgeAddress(bridge, cidrAddress string) error {
	log.Infof("Assigning %s to bridge %s.", cidrAddress, bridge)

	addr, err := netlink.ParseAddr(cidrAddress)
	if err != nil {
		return errors.Wrapf(err, "invalid address %q", cidrAddress)
	}

	link, err := netlink.LinkByName(bridge)
	if err != nil {
		return errors.Wrapf(err, "failed to find bridge %s", bridge)
	}

	if err := netlink.AddrAdd(link, addr); err != nil {
		if os.IsExist(err) {
			log.Debugf("Bridge %s already carries %s.", bridge, cidrAddress)
			return nil
		}
		return errors.Wrapf(err, "failed to assign %s to bridge %s", cidrAddress, bridge)
	}

	return nil
}

func (p *linuxProvider) RemoveBridgeAddress(bridge, cidrAddress string) error {
	log.Infof("Removing %s from bridge %s.", cidrAddress, bridge)

	addr, err := netlink.ParseAddr(cidrAddress)
	if err != nil {
		return errors.Wrapf(err, "invalid address %q", cidrAddress)
	}

	link, err := netlink.LinkByName(bridge)
	if err != nil {
		if _, ok := err.(netlink.LinkNotFoundError); ok {
			return nil
		}
		return errors.Wrapf(err, "failed to find bridge %s", bridge)
	}

	if err := netlink.AddrDel(link, addr); err != nil {
		log.Warnf("Failed to remove %s from bridge %s: %v.", cidrAddress, bridge, err)
	}

	return nil
}

func (p *linuxProvider) AddDefaultRoute(namespaceID, gateway string) error {
	log.Infof("Adding default route via %s in namespace %s.", gateway, namespaceID)

	gw := net.ParseIP(gateway)
	if gw == nil {
		return errors.Errorf("invalid gateway address %q", gateway)
	}

	handle, ns, err := handleInNamespace(namespaceID)
	if err != nil {
		return err
	}
	defer ns.Close()
	defer handle.Close()

	route := &netlink.Route{Gw: gw}
	if err := handle.RouteReplace(route); err != nil {
		return errors.Wrapf(err, "failed to add default route via %s in %s", gateway, namespaceID)
	}

	return nil
}

func (p *linuxProvider) AddRoute(namespaceID, destinationBlock, gateway string) error {
	log.Infof("Adding route to %s via %s in namespace %s.", destinationBlock, gateway, namespaceID)

	route, err := parseRoute(destinationBlock, gateway)
	if err != nil {
		return err
	}

	handle, ns, err := handleInNamespace(namespaceID)
	if err != nil {
		return err
	}
	defer ns.Close()
	defer handle.Close()

	if err := handle.RouteAdd(route); err != nil {
		return errors.Wrapf(err, "failed to add route to %s in %s", destinationBlock, namespaceID)
	}

	return nil
}

func (p *linuxProvider) AddBridgeRoute(bridge, destinationBlock, gateway string) error {
	log.Infof("Adding route to %s via %s on bridge %s.", destinationBlock, gateway, bridge)

	route, err := parseRoute(destinationBlock, gateway)
	if err != nil {
		return err
	}

	link, err := netlink.LinkByName(bridge)
	if err != nil {
		return errors.Wrapf(err, "failed to find bridge %s", bridge)
	}
	route.LinkIndex = link.Attrs().Index

	if err := netlink.RouteAdd(route); err != nil {
		return errors.Wrapf(err, "failed to add route to %s on bridge %s", destinationBlock, bridge)
	}

	return nil
}

func (p *linuxProvider) SetLoopbackUp(namespaceID string) error {
	handle, ns, err := handleInNamespace(namespaceID)
	if err != nil {
		return err
	}
	defer ns.Close()
	defer handle.Close()

	lo, err := handle.LinkByName("lo")
	if err != nil {
		return errors.Wrapf(err, "failed to find loopback in namespace %s", namespaceID)
	}

	if err := handle.LinkSetUp(lo); err != nil {
		return errors.Wrapf(err, "failed to bring up loopback in namespace %s", namespaceID)
	}

	return nil
}

func (p *linuxProvider) EnableForwarding() error {
	log.Infof("Enabling IP forwarding.")

	if err := os.WriteFile(ipForwardPath, []byte("1"), 0644); err != nil {
		return errors.Wrap(err, "failed to enable IP forwarding")
	}

	return nil
}

func (p *linuxProvider) SetupNAT(bridge, internetInterface string, publicBlocks []string) error {
	log.Infof("Setting up NAT from bridge %s to %s for %v.", bridge, internetInterface, publicBlocks)

	for _, block := range publicBlocks {
		for _, rule := range natRules(bridge, internetInterface, block) {
			if err := p.ipt.AppendUnique(rule.table, rule.chain, rule.spec...); err != nil {
				return errors.Wrapf(err, "failed to install NAT rule for %s", block)
			}
		}
	}

	return nil
}

func (p *linuxProvider) CleanupNAT(bridge, internetInterface string, publicBlocks []string) error {
	log.Infof("Cleaning up NAT from bridge %s to %s for %v.", bridge, internetInterface, publicBlocks)

	for _, block := range publicBlocks {
		for _, rule := range natRules(bridge, internetInterface, block) {
			if err := p.ipt.DeleteIfExists(rule.table, rule.chain, rule.spec...); err != nil {
				log.Warnf("Failed to remove NAT rule for %s: %v.", block, err)
			}
		}
	}

	return nil
}

func (p *linuxProvider) InstallIsolation(bridgeA, bridgeB string) error {
	log.Infof("Installing isolation between bridges %s and %s.", bridgeA, bridgeB)

	for _, rule := range isolationRules(bridgeA, bridgeB) {
		if err := p.ipt.AppendUnique("filter", "FORWARD", rule...); err != nil {
			return errors.Wrapf(err, "failed to isolate %s from %s", bridgeA, bridgeB)
		}
	}

	return nil
}

func (p *linuxProvider) RemoveIsolation(bridgeA, bridgeB string) error {
	log.Infof("Removing isolation between bridges %s and %s.", bridgeA, bridgeB)

	for _, rule := range isolationRules(bridgeA, bridgeB) {
		if err := p.ipt.DeleteIfExists("filter", "FORWARD", rule...); err != nil {
			log.Warnf("Failed to remove isolation rule between %s and %s: %v.", bridgeA, bridgeB, err)
		}
	}

	return nil
}

func (p *linuxProvider) ApplyFirewallDirective(namespaceID, protocol string, port int, action string) error {
	log.Infof("Applying firewall directive in %s: proto %s port %d action %s.", namespaceID, protocol, port, action)

	spec := []string{"-p", protocol}
	if port > 0 {
		spec = append(spec, "--dport", strconv.Itoa(port))
	}
	spec = append(spec, "-j", action)

	// Directives are deliberately appended, never deduplicated. The firewall
	// applier's contract is append-only.
	return runInNamespace(namespaceID, func() error {
		if err := p.ipt.Append("filter", "INPUT", spec...); err != nil {
			return errors.Wrapf(err, "failed to apply firewall directive in %s", namespaceID)
		}
		return nil
	})
}

func (p *linuxProvider) RunInNamespace(namespaceID, command string) (string, error) {
	log.Infof("Running %q in namespace %s.", command, namespaceID)

	var out []byte
	err := runInNamespace(namespaceID, func() error {
		var cmdErr error
		out, cmdErr = exec.Command("sh", "-c", command).CombinedOutput()
		return cmdErr
	})
	if err != nil {
		return string(out), errors.Wrapf(err, "command failed in namespace %s", namespaceID)
	}

	return string(out), nil
}

type iptRule struct {
	table string
	chain string
	spec  []string
}

// natRules returns the rules realizing NAT for one public block: masquerade
// outbound traffic from the block, accept its forwarded traffic toward the
// internet interface and accept the established return path.
func natRules(bridge, internetInterface, block string) []iptRule {
	return []iptRule{
		{"nat", "POSTROUTING", []string{
			"-s", block, "-o", internetInterface, "-j", "MASQUERADE"}},
		{"filter", "FORWARD", []string{
			"-i", bridge, "-o", internetInterface, "-s", block, "-j", "ACCEPT"}},
		{"filter", "FORWARD", []string{
			"-i", internetInterface, "-o", bridge, "-d", block,
			"-m", "state", "--state", "RELATED,ESTABLISHED", "-j", "ACCEPT"}},
	}
}

// isolationRules returns the pairwise forwarding drops between two bridges.
func isolationRules(bridgeA, bridgeB string) [][]string {
	return [][]string{
		{"-i", bridgeA, "-o", bridgeB, "-j", "DROP"},
		{"-i", bridgeB, "-o", bridgeA, "-j", "DROP"},
	}
}

func parseRoute(destinationBlock, gateway string) (*netlink.Route, error) {
	_, dst, err := net.ParseCIDR(destinationBlock)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid destination block %q", destinationBlock)
	}

	gw := net.ParseIP(gateway)
	if gw == nil {
		return nil, errors.Errorf("invalid gateway address %q", gateway)
	}

	return &netlink.Route{Dst: dst, Gw: gw}, nil
}
