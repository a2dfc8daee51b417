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

package core

import (
	"fmt"

	log "github.com/cihub/seelog"
	"github.com/pkg/errors"

	"github.com/vpclab/vpcctl/network/netops"
	"github.com/vpclab/vpcctl/network/vpcaddr"
	"github.com/vpclab/vpcctl/store"
)

// PeeringManager manages bidirectional connectivity between pairs of VPCs. A
// peering is a dedicated veth pair with one end attached to each VPC's
// bridge; at most one peering exists per unordered pair.
type PeeringManager struct {
	store *store.Store
	net   netops.Provider
}

// NewPeeringManager creates a new PeeringManager.
func NewPeeringManager(s *store.Store, p netops.Provider) *PeeringManager {
	return &PeeringManager{store: s, net: p}
}

// Create creates a peering between two VPCs. Convenience routes toward the
// peer's subnet blocks are installed best-effort: a failed route is logged
// and never aborts the peering, since connectivity over the shared link does
// not depend on it.
func (m *PeeringManager) Create(vpc1Name, vpc2Name string) error {
	log.Infof("Creating peering between %s and %s.", vpc1Name, vpc2Name)

	if vpc1Name == vpc2Name {
		return validationErrorf("cannot peer VPC %s with itself", vpc1Name)
	}

	return m.store.WithPairLock(vpc1Name, vpc2Name, func() error {
		if _, err := m.store.GetPeering(vpc1Name, vpc2Name); err == nil {
			log.Warnf("Peering already exists between %s and %s.", vpc1Name, vpc2Name)
			return errors.Wrapf(ErrAlreadyExists, "peering %s-%s", vpc1Name, vpc2Name)
		} else if !errors.Is(err, ErrNotFound) {
			return err
		}

		vpc1, err := m.store.GetVPC(vpc1Name)
		if err != nil {
			return errors.Wrapf(err, "vpc %s", vpc1Name)
		}
		vpc2, err := m.store.GetVPC(vpc2Name)
		if err != nil {
			return errors.Wrapf(err, "vpc %s", vpc2Name)
		}

		veth1, veth2 := vpcaddr.PeeringLinkNames(vpc1Name, vpc2Name)
		peering := &store.Peering{
			VPC1:  vpc1Name,
			VPC2:  vpc2Name,
			Veth1: veth1,
			Veth2: veth2,
		}

		steps := []step{
			{
				name:   "create veth pair " + veth1 + "/" + veth2,
				apply:  func() error { return m.net.CreateLinkPair(veth1, veth2) },
				revert: func() error { return m.net.DeleteLinkPair(veth1) },
			},
			{
				name:  "attach " + veth1 + " to " + vpc1.Bridge,
				apply: func() error { return m.net.AttachToBridge(vpc1.Bridge, veth1) },
			},
			{
				name:  "attach " + veth2 + " to " + vpc2.Bridge,
				apply: func() error { return m.net.AttachToBridge(vpc2.Bridge, veth2) },
			},
			{
				name: "install routes",
				apply: func() error {
					// Soft-failure boundary: route errors surface in logs only.
					m.setupRoutes(vpc1, vpc2)
					m.setupRoutes(vpc2, vpc1)
					return nil
				},
			},
			{
				name:  "persist record",
				apply: func() error { return m.store.SavePeering(peering) },
			},
		}

		op := fmt.Sprintf("create peering %s-%s", vpc1Name, vpc2Name)
		if err := runSteps(op, steps); err != nil {
			return err
		}

		log.Infof("Peering created between %s and %s.", vpc1Name, vpc2Name)
		return nil
	})
}

// setupRoutes installs routes on the local VPC's bridge toward each of the
// peer's subnet blocks, via the local VPC's first subnet gateway. A VPC with
// no subnets yet gets no routes; they can be added by re-peering later.
func (m *PeeringManager) setupRoutes(local, peer *store.VPC) {
	if len(local.Subnets) == 0 {
		log.Infof("VPC %s has no subnets, skipping peering routes.", local.Name)
		return
	}

	gateway := local.Subnets[0].Gateway
	for _, subnet := range peer.Subnets {
		if err := m.net.AddBridgeRoute(local.Bridge, subnet.CIDR, gateway); err != nil {
			log.Warnf("Failed to add peering route to %s on %s: %v.",
				subnet.CIDR, local.Bridge, err)
		}
	}
}

// Delete erases the peering record between two VPCs, looked up under either
// ordering of the pair. The veth pair and the routes installed at creation
// are left on the host; only the record is reclaimed. A later Create for the
// same pair reuses the leaked pair through the deterministic names.
func (m *PeeringManager) Delete(vpc1Name, vpc2Name string) error {
	log.Infof("Deleting peering between %s and %s.", vpc1Name, vpc2Name)

	return m.store.WithPairLock(vpc1Name, vpc2Name, func() error {
		peering, err := m.store.GetPeering(vpc1Name, vpc2Name)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				log.Warnf("Peering between %s and %s does not exist.", vpc1Name, vpc2Name)
			}
			return err
		}

		if err := m.store.DeletePeering(vpc1Name, vpc2Name); err != nil {
			return err
		}

		log.Warnf("Peering record %s-%s erased; veth pair %s/%s remains on the host.",
			peering.VPC1, peering.VPC2, peering.Veth1, peering.Veth2)
		return nil
	})
}
