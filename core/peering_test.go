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
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/vpclab/vpcctl/network/vpcaddr"
	"github.com/vpclab/vpcctl/store"
)

func seedPeeredVPCs(t *testing.T, s *store.Store) {
	assert.NoError(t, s.SaveVPC(&store.VPC{
		Name:   "alpha",
		Bridge: "br-alpha",
		Subnets: []store.Subnet{
			{Name: "web", CIDR: "10.0.1.0/24", Gateway: "10.0.1.1"},
			{Name: "db", CIDR: "10.0.2.0/24", Gateway: "10.0.2.1"},
		},
	}))
	assert.NoError(t, s.SaveVPC(&store.VPC{
		Name:   "beta",
		Bridge: "br-beta",
		Subnets: []store.Subnet{
			{Name: "api", CIDR: "10.1.1.0/24", Gateway: "10.1.1.1"},
		},
	}))
}

func TestPeeringCreate(t *testing.T) {
	s, net, ctrl := newTestStoreAndMock(t)
	defer ctrl.Finish()

	seedPeeredVPCs(t, s)
	veth1, veth2 := vpcaddr.PeeringLinkNames("alpha", "beta")

	net.EXPECT().CreateLinkPair(veth1, veth2).Return(nil)
	net.EXPECT().AttachToBridge("br-alpha", veth1).Return(nil)
	net.EXPECT().AttachToBridge("br-beta", veth2).Return(nil)

	// Routes on each bridge toward every peer block, via the local first
	// subnet gateway.
	net.EXPECT().AddBridgeRoute("br-alpha", "10.1.1.0/24", "10.0.1.1").Return(nil)
	net.EXPECT().AddBridgeRoute("br-beta", "10.0.1.0/24", "10.1.1.1").Return(nil)
	net.EXPECT().AddBridgeRoute("br-beta", "10.0.2.0/24", "10.1.1.1").Return(nil)

	m := NewPeeringManager(s, net)
	assert.NoError(t, m.Create("alpha", "beta"))

	peering, err := s.GetPeering("alpha", "beta")
	assert.NoError(t, err)
	assert.Equal(t, veth1, peering.Veth1)
	assert.Equal(t, veth2, peering.Veth2)
}

func TestPeeringCreateSelf(t *testing.T) {
	s, net, ctrl := newTestStoreAndMock(t)
	defer ctrl.Finish()

	m := NewPeeringManager(s, net)
	err := m.Create("alpha", "alpha")

	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestPeeringCreateDuplicateEitherOrder(t *testing.T) {
	s, net, ctrl := newTestStoreAndMock(t)
	defer ctrl.Finish()

	seedPeeredVPCs(t, s)
	assert.NoError(t, s.SavePeering(&store.Peering{VPC1: "alpha", VPC2: "beta"}))

	m := NewPeeringManager(s, net)
	assert.True(t, errors.Is(m.Create("alpha", "beta"), ErrAlreadyExists))
	assert.True(t, errors.Is(m.Create("beta", "alpha"), ErrAlreadyExists))
}

func TestPeeringCreateMissingVPC(t *testing.T) {
	s, net, ctrl := newTestStoreAndMock(t)
	defer ctrl.Finish()

	assert.NoError(t, s.SaveVPC(&store.VPC{Name: "alpha", Bridge: "br-alpha"}))

	m := NewPeeringManager(s, net)
	err := m.Create("alpha", "ghost")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = s.GetPeering("alpha", "ghost")
	assert.True(t, errors.Is(err, ErrNotFound))
}

// Route installation is best-effort: a failing route never aborts the
// peering and the record is still written.
func TestPeeringCreateSurvivesRouteFailures(t *testing.T) {
	s, net, ctrl := newTestStoreAndMock(t)
	defer ctrl.Finish()

	seedPeeredVPCs(t, s)
	veth1, veth2 := vpcaddr.PeeringLinkNames("alpha", "beta")

	net.EXPECT().CreateLinkPair(veth1, veth2).Return(nil)
	net.EXPECT().AttachToBridge("br-alpha", veth1).Return(nil)
	net.EXPECT().AttachToBridge("br-beta", veth2).Return(nil)
	net.EXPECT().AddBridgeRoute(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("network is unreachable")).Times(3)

	m := NewPeeringManager(s, net)
	assert.NoError(t, m.Create("alpha", "beta"))

	_, err := s.GetPeering("alpha", "beta")
	assert.NoError(t, err)
}

// VPCs without subnets simply get no convenience routes.
func TestPeeringCreateSkipsRoutesWithoutSubnets(t *testing.T) {
	s, net, ctrl := newTestStoreAndMock(t)
	defer ctrl.Finish()

	assert.NoError(t, s.SaveVPC(&store.VPC{Name: "alpha", Bridge: "br-alpha"}))
	assert.NoError(t, s.SaveVPC(&store.VPC{Name: "beta", Bridge: "br-beta"}))

	veth1, veth2 := vpcaddr.PeeringLinkNames("alpha", "beta")
	net.EXPECT().CreateLinkPair(veth1, veth2).Return(nil)
	net.EXPECT().AttachToBridge("br-alpha", veth1).Return(nil)
	net.EXPECT().AttachToBridge("br-beta", veth2).Return(nil)

	m := NewPeeringManager(s, net)
	assert.NoError(t, m.Create("alpha", "beta"))
}

func TestPeeringCreateRollsBackOnAttachFailure(t *testing.T) {
	s, net, ctrl := newTestStoreAndMock(t)
	defer ctrl.Finish()

	seedPeeredVPCs(t, s)
	veth1, veth2 := vpcaddr.PeeringLinkNames("alpha", "beta")

	net.EXPECT().CreateLinkPair(veth1, veth2).Return(nil)
	net.EXPECT().AttachToBridge("br-alpha", veth1).Return(errors.New("bridge is gone"))
	net.EXPECT().DeleteLinkPair(veth1).Return(nil)

	m := NewPeeringManager(s, net)
	assert.Error(t, m.Create("alpha", "beta"))

	_, err := s.GetPeering("alpha", "beta")
	assert.True(t, errors.Is(err, ErrNotFound))
}

// Delete erases the record only. No teardown calls reach the provider.
func TestPeeringDeleteRecordOnly(t *testing.T) {
	s, net, ctrl := newTestStoreAndMock(t)
	defer ctrl.Finish()

	veth1, veth2 := vpcaddr.PeeringLinkNames("alpha", "beta")
	assert.NoError(t, s.SavePeering(&store.Peering{
		VPC1: "alpha", VPC2: "beta", Veth1: veth1, Veth2: veth2,
	}))

	m := NewPeeringManager(s, net)
	assert.NoError(t, m.Delete("beta", "alpha"))

	_, err := s.GetPeering("alpha", "beta")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestPeeringDeleteMissing(t *testing.T) {
	s, net, ctrl := newTestStoreAndMock(t)
	defer ctrl.Finish()

	m := NewPeeringManager(s, net)
	err := m.Delete("alpha", "beta")
	assert.True(t, errors.Is(err, ErrNotFound))
}

// After a delete the pair can be re-peered under either ordering; the
// deterministic link names address the same pair again.
func TestPeeringRecreateAfterDelete(t *testing.T) {
	s, net, ctrl := newTestStoreAndMock(t)
	defer ctrl.Finish()

	assert.NoError(t, s.SaveVPC(&store.VPC{Name: "alpha", Bridge: "br-alpha"}))
	assert.NoError(t, s.SaveVPC(&store.VPC{Name: "beta", Bridge: "br-beta"}))

	veth1, veth2 := vpcaddr.PeeringLinkNames("alpha", "beta")
	net.EXPECT().CreateLinkPair(veth1, veth2).Return(nil)
	net.EXPECT().CreateLinkPair(veth2, veth1).Return(nil)
	net.EXPECT().AttachToBridge("br-alpha", veth1).Return(nil).Times(2)
	net.EXPECT().AttachToBridge("br-beta", veth2).Return(nil).Times(2)

	m := NewPeeringManager(s, net)
	assert.NoError(t, m.Create("alpha", "beta"))
	assert.NoError(t, m.Delete("alpha", "beta"))
	assert.NoError(t, m.Create("beta", "alpha"))

	// The record reflects the second invocation's ordering, with each veth
	// end still bound to the same VPC.
	peering, err := s.GetPeering("alpha", "beta")
	assert.NoError(t, err)
	assert.Equal(t, "beta", peering.VPC1)
	assert.Equal(t, veth2, peering.Veth1)
	assert.Equal(t, veth1, peering.Veth2)
}
