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

func TestSubnetCreate(t *testing.T) {
	s, net, ctrl := newTestStoreAndMock(t)
	defer ctrl.Finish()

	assert.NoError(t, s.SaveVPC(&store.VPC{Name: "prod", CIDR: "10.0.0.0/16", Bridge: "br-prod"}))

	namespace := vpcaddr.NamespaceID("prod", "web")
	vethNS, vethBR := vpcaddr.SubnetLinkNames("prod", "web")

	gomock.InOrder(
		net.EXPECT().CreateNamespace(namespace).Return(nil),
		net.EXPECT().CreateLinkPair(vethNS, vethBR).Return(nil),
		net.EXPECT().AttachToBridge("br-prod", vethBR).Return(nil),
		net.EXPECT().MoveToNamespace(vethNS, namespace).Return(nil),
		net.EXPECT().AssignAddress(namespace, vethNS, "10.0.1.2/24").Return(nil),
		net.EXPECT().AssignBridgeAddress("br-prod", "10.0.1.1/24").Return(nil),
		net.EXPECT().AddDefaultRoute(namespace, "10.0.1.1").Return(nil),
		net.EXPECT().SetLoopbackUp(namespace).Return(nil),
	)

	m := NewSubnetManager(s, net)
	assert.NoError(t, m.Create("prod", "web", "10.0.1.0/24", store.SubnetPublic))

	vpc, err := s.GetVPC("prod")
	assert.NoError(t, err)
	subnet := vpc.FindSubnet("web")
	assert.NotNil(t, subnet)
	assert.Equal(t, "10.0.1.0/24", subnet.CIDR)
	assert.Equal(t, store.SubnetPublic, subnet.Type)
	assert.Equal(t, namespace, subnet.Namespace)
	assert.Equal(t, vethNS, subnet.VethNS)
	assert.Equal(t, vethBR, subnet.VethBR)
	assert.Equal(t, "10.0.1.1", subnet.Gateway)
	assert.Equal(t, "10.0.1.2", subnet.IP)
}

func TestSubnetCreateInvalidType(t *testing.T) {
	s, net, ctrl := newTestStoreAndMock(t)
	defer ctrl.Finish()

	m := NewSubnetManager(s, net)
	err := m.Create("prod", "web", "10.0.1.0/24", "dmz")

	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestSubnetCreateBlockTooSmall(t *testing.T) {
	s, net, ctrl := newTestStoreAndMock(t)
	defer ctrl.Finish()

	m := NewSubnetManager(s, net)
	err := m.Create("prod", "web", "10.0.1.0/31", store.SubnetPrivate)

	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestSubnetCreateMissingVPC(t *testing.T) {
	s, net, ctrl := newTestStoreAndMock(t)
	defer ctrl.Finish()

	m := NewSubnetManager(s, net)
	err := m.Create("ghost", "web", "10.0.1.0/24", store.SubnetPrivate)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSubnetCreateDuplicate(t *testing.T) {
	s, net, ctrl := newTestStoreAndMock(t)
	defer ctrl.Finish()

	assert.NoError(t, s.SaveVPC(&store.VPC{
		Name:    "prod",
		Bridge:  "br-prod",
		Subnets: []store.Subnet{{Name: "web", CIDR: "10.0.1.0/24"}},
	}))

	m := NewSubnetManager(s, net)
	err := m.Create("prod", "web", "10.0.9.0/24", store.SubnetPrivate)
	assert.True(t, errors.Is(err, ErrAlreadyExists))
}

// A failure after the veth pair exists must unwind the pair and the
// namespace, and leave the VPC record without the subnet.
func TestSubnetCreateRollsBackMidSequence(t *testing.T) {
	s, net, ctrl := newTestStoreAndMock(t)
	defer ctrl.Finish()

	assert.NoError(t, s.SaveVPC(&store.VPC{Name: "prod", CIDR: "10.0.0.0/16", Bridge: "br-prod"}))

	namespace := vpcaddr.NamespaceID("prod", "web")
	vethNS, vethBR := vpcaddr.SubnetLinkNames("prod", "web")

	gomock.InOrder(
		net.EXPECT().CreateNamespace(namespace).Return(nil),
		net.EXPECT().CreateLinkPair(vethNS, vethBR).Return(nil),
		net.EXPECT().AttachToBridge("br-prod", vethBR).Return(errors.New("bridge is down")),
		net.EXPECT().DeleteLinkPair(vethBR).Return(nil),
		net.EXPECT().DeleteNamespace(namespace).Return(nil),
	)

	m := NewSubnetManager(s, net)
	assert.Error(t, m.Create("prod", "web", "10.0.1.0/24", store.SubnetPrivate))

	vpc, err := s.GetVPC("prod")
	assert.NoError(t, err)
	assert.Nil(t, vpc.FindSubnet("web"))
}

// Gateway addresses assigned to the bridge are removed on rollback too.
func TestSubnetCreateRollsBackBridgeAddress(t *testing.T) {
	s, net, ctrl := newTestStoreAndMock(t)
	defer ctrl.Finish()

	assert.NoError(t, s.SaveVPC(&store.VPC{Name: "prod", CIDR: "10.0.0.0/16", Bridge: "br-prod"}))

	namespace := vpcaddr.NamespaceID("prod", "web")
	vethNS, vethBR := vpcaddr.SubnetLinkNames("prod", "web")

	gomock.InOrder(
		net.EXPECT().CreateNamespace(namespace).Return(nil),
		net.EXPECT().CreateLinkPair(vethNS, vethBR).Return(nil),
		net.EXPECT().AttachToBridge("br-prod", vethBR).Return(nil),
		net.EXPECT().MoveToNamespace(vethNS, namespace).Return(nil),
		net.EXPECT().AssignAddress(namespace, vethNS, "10.0.1.2/24").Return(nil),
		net.EXPECT().AssignBridgeAddress("br-prod", "10.0.1.1/24").Return(nil),
		net.EXPECT().AddDefaultRoute(namespace, "10.0.1.1").Return(errors.New("no route")),
		net.EXPECT().RemoveBridgeAddress("br-prod", "10.0.1.1/24").Return(nil),
		net.EXPECT().DeleteLinkPair(vethBR).Return(nil),
		net.EXPECT().DeleteNamespace(namespace).Return(nil),
	)

	m := NewSubnetManager(s, net)
	assert.Error(t, m.Create("prod", "web", "10.0.1.0/24", store.SubnetPrivate))

	vpc, err := s.GetVPC("prod")
	assert.NoError(t, err)
	assert.Empty(t, vpc.Subnets)
}

// Overlapping sibling blocks are accepted as given. Block planning is the
// caller's responsibility.
func TestSubnetCreateAllowsOverlappingSiblings(t *testing.T) {
	s, net, ctrl := newTestStoreAndMock(t)
	defer ctrl.Finish()

	assert.NoError(t, s.SaveVPC(&store.VPC{
		Name:    "prod",
		Bridge:  "br-prod",
		Subnets: []store.Subnet{{Name: "web", CIDR: "10.0.1.0/24"}},
	}))

	namespace := vpcaddr.NamespaceID("prod", "web2")
	vethNS, vethBR := vpcaddr.SubnetLinkNames("prod", "web2")

	net.EXPECT().CreateNamespace(namespace).Return(nil)
	net.EXPECT().CreateLinkPair(vethNS, vethBR).Return(nil)
	net.EXPECT().AttachToBridge("br-prod", vethBR).Return(nil)
	net.EXPECT().MoveToNamespace(vethNS, namespace).Return(nil)
	net.EXPECT().AssignAddress(namespace, vethNS, "10.0.1.2/24").Return(nil)
	net.EXPECT().AssignBridgeAddress("br-prod", "10.0.1.1/24").Return(nil)
	net.EXPECT().AddDefaultRoute(namespace, "10.0.1.1").Return(nil)
	net.EXPECT().SetLoopbackUp(namespace).Return(nil)

	m := NewSubnetManager(s, net)
	assert.NoError(t, m.Create("prod", "web2", "10.0.1.0/24", store.SubnetPrivate))

	vpc, err := s.GetVPC("prod")
	assert.NoError(t, err)
	assert.Len(t, vpc.Subnets, 2)
}
