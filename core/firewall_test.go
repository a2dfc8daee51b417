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
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/vpclab/vpcctl/store"
)

func seedFirewallVPC(t *testing.T, s *store.Store) {
	assert.NoError(t, s.SaveVPC(&store.VPC{
		Name:   "prod",
		Bridge: "br-prod",
		Subnets: []store.Subnet{
			{Name: "web", CIDR: "10.0.1.0/24", Namespace: "ns-prod-web"},
		},
	}))
}

func writeRuleFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestTranslateAction(t *testing.T) {
	assert.Equal(t, "ACCEPT", translateAction("allow"))
	assert.Equal(t, "ACCEPT", translateAction("ALLOW"))
	assert.Equal(t, "DROP", translateAction("deny"))
	assert.Equal(t, "REJECT", translateAction("reject"))
	assert.Equal(t, "LOG", translateAction("log"))
}

func TestLoadRuleSetJSON(t *testing.T) {
	path := writeRuleFile(t, "rules.json", `{
  "subnet": "10.0.1.0/24",
  "ingress": [
    {"protocol": "tcp", "port": 80, "action": "allow"},
    {"protocol": "tcp", "port": 22, "action": "deny"}
  ]
}`)

	ruleSet, err := LoadRuleSet(path)
	assert.NoError(t, err)
	assert.Equal(t, "10.0.1.0/24", ruleSet.Subnet)
	assert.Len(t, ruleSet.Ingress, 2)
	assert.Equal(t, 80, ruleSet.Ingress[0].Port)
	assert.Equal(t, "deny", ruleSet.Ingress[1].Action)
}

func TestLoadRuleSetYAML(t *testing.T) {
	path := writeRuleFile(t, "rules.yaml", `
subnet: 10.0.1.0/24
ingress:
  - protocol: udp
    port: 53
    action: allow
`)

	ruleSet, err := LoadRuleSet(path)
	assert.NoError(t, err)
	assert.Equal(t, "10.0.1.0/24", ruleSet.Subnet)
	assert.Len(t, ruleSet.Ingress, 1)
	assert.Equal(t, "udp", ruleSet.Ingress[0].Protocol)
}

func TestLoadRuleSetMissingFile(t *testing.T) {
	_, err := LoadRuleSet(filepath.Join(t.TempDir(), "ghost.json"))
	assert.Error(t, err)
}

func TestLoadRuleSetMalformed(t *testing.T) {
	path := writeRuleFile(t, "rules.json", `{"subnet": [not json`)

	_, err := LoadRuleSet(path)
	assert.Error(t, err)
}

func TestApplyFromRuleSet(t *testing.T) {
	s, net, ctrl := newTestStoreAndMock(t)
	defer ctrl.Finish()
	seedFirewallVPC(t, s)

	path := writeRuleFile(t, "rules.json", `{
  "subnet": "10.0.1.0/24",
  "ingress": [
    {"protocol": "tcp", "port": 80, "action": "allow"},
    {"protocol": "tcp", "port": 22, "action": "deny"}
  ]
}`)

	net.EXPECT().ApplyFirewallDirective("ns-prod-web", "tcp", 80, "ACCEPT").Return(nil)
	net.EXPECT().ApplyFirewallDirective("ns-prod-web", "tcp", 22, "DROP").Return(nil)

	m := NewFirewallManager(s, net)
	assert.NoError(t, m.ApplyFromRuleSet("prod", path))
}

// Application is append-only. Applying the same document twice issues every
// directive twice.
func TestApplyFromRuleSetTwiceAppends(t *testing.T) {
	s, net, ctrl := newTestStoreAndMock(t)
	defer ctrl.Finish()
	seedFirewallVPC(t, s)

	path := writeRuleFile(t, "rules.json", `{
  "subnet": "10.0.1.0/24",
  "ingress": [{"protocol": "tcp", "port": 443, "action": "allow"}]
}`)

	net.EXPECT().ApplyFirewallDirective("ns-prod-web", "tcp", 443, "ACCEPT").
		Return(nil).Times(2)

	m := NewFirewallManager(s, net)
	assert.NoError(t, m.ApplyFromRuleSet("prod", path))
	assert.NoError(t, m.ApplyFromRuleSet("prod", path))
}

func TestApplyFromRuleSetSubnetNotFound(t *testing.T) {
	s, net, ctrl := newTestStoreAndMock(t)
	defer ctrl.Finish()
	seedFirewallVPC(t, s)

	path := writeRuleFile(t, "rules.json", `{
  "subnet": "10.9.9.0/24",
  "ingress": [{"protocol": "tcp", "port": 80, "action": "allow"}]
}`)

	m := NewFirewallManager(s, net)
	err := m.ApplyFromRuleSet("prod", path)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestApplyFromRuleSetMissingVPC(t *testing.T) {
	s, net, ctrl := newTestStoreAndMock(t)
	defer ctrl.Finish()

	path := writeRuleFile(t, "rules.json", `{"subnet": "10.0.1.0/24", "ingress": []}`)

	m := NewFirewallManager(s, net)
	err := m.ApplyFromRuleSet("ghost", path)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestApplyDirectDefaults(t *testing.T) {
	s, net, ctrl := newTestStoreAndMock(t)
	defer ctrl.Finish()
	seedFirewallVPC(t, s)

	// Protocol defaults to tcp, action to allow, port zero means all ports.
	net.EXPECT().ApplyFirewallDirective("ns-prod-web", "tcp", 0, "ACCEPT").Return(nil)

	m := NewFirewallManager(s, net)
	assert.NoError(t, m.ApplyDirect("prod", "web", []Rule{{}}))
}

func TestApplyDirectSubnetNotFound(t *testing.T) {
	s, net, ctrl := newTestStoreAndMock(t)
	defer ctrl.Finish()
	seedFirewallVPC(t, s)

	m := NewFirewallManager(s, net)
	err := m.ApplyDirect("prod", "ghost", []Rule{{Protocol: "tcp", Port: 80}})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestApplyDirectStopsOnDirectiveFailure(t *testing.T) {
	s, net, ctrl := newTestStoreAndMock(t)
	defer ctrl.Finish()
	seedFirewallVPC(t, s)

	net.EXPECT().ApplyFirewallDirective("ns-prod-web", "tcp", 80, "ACCEPT").
		Return(errors.New("iptables failed"))

	m := NewFirewallManager(s, net)
	err := m.ApplyDirect("prod", "web", []Rule{
		{Protocol: "tcp", Port: 80, Action: "allow"},
		{Protocol: "tcp", Port: 22, Action: "deny"},
	})
	assert.Error(t, err)
}
