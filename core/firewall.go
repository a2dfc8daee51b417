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
	"strings"

	log "github.com/cihub/seelog"
	"github.com/ghodss/yaml"
	"github.com/pkg/errors"

	"github.com/vpclab/vpcctl/network/netops"
	"github.com/vpclab/vpcctl/store"
)

// Rule is one declarative ingress rule. A missing port applies the rule to
// all ports of the protocol.
type Rule struct {
	Protocol string `json:"protocol"`
	Port     int    `json:"port,omitempty"`
	Action   string `json:"action"`
}

// RuleSet is a declarative rule-set document targeting one subnet by its
// address block.
type RuleSet struct {
	Subnet  string `json:"subnet"`
	Ingress []Rule `json:"ingress"`
}

// FirewallManager translates declarative rule sets into inbound firewall
// directives in a subnet's namespace.
//
// Application is append-only: rules are applied in document order and
// accumulate. Applying the same document twice installs every directive
// twice; there is no replace or clear.
type FirewallManager struct {
	store *store.Store
	net   netops.Provider
}

// NewFirewallManager creates a new FirewallManager.
func NewFirewallManager(s *store.Store, p netops.Provider) *FirewallManager {
	return &FirewallManager{store: s, net: p}
}

// LoadRuleSet reads a rule-set document from a file. Documents are JSON per
// the schema; YAML is accepted equivalently.
func LoadRuleSet(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read rule set %s", path)
	}

	var ruleSet RuleSet
	if err := yaml.Unmarshal(data, &ruleSet); err != nil {
		return nil, errors.Wrapf(err, "invalid rule set %s", path)
	}

	return &ruleSet, nil
}

// ApplyFromRuleSet applies a rule-set document to the subnet of the VPC whose
// address block matches the document's subnet field.
func (m *FirewallManager) ApplyFromRuleSet(vpcName, rulesPath string) error {
	log.Infof("Applying firewall rules from %s to VPC %s.", rulesPath, vpcName)

	ruleSet, err := LoadRuleSet(rulesPath)
	if err != nil {
		return err
	}

	vpc, err := m.store.GetVPC(vpcName)
	if err != nil {
		return err
	}

	subnet := vpc.FindSubnetByCIDR(ruleSet.Subnet)
	if subnet == nil {
		log.Errorf("Subnet %s not found in VPC %s.", ruleSet.Subnet, vpcName)
		return errors.Wrapf(ErrNotFound, "subnet %s in vpc %s", ruleSet.Subnet, vpcName)
	}

	return m.apply(subnet, ruleSet.Ingress)
}

// ApplyDirect applies the given rules to a subnet resolved by name.
func (m *FirewallManager) ApplyDirect(vpcName, subnetName string, rules []Rule) error {
	log.Infof("Applying firewall rules to subnet %s in VPC %s.", subnetName, vpcName)

	vpc, err := m.store.GetVPC(vpcName)
	if err != nil {
		return err
	}

	subnet := vpc.FindSubnet(subnetName)
	if subnet == nil {
		log.Errorf("Subnet %s not found in VPC %s.", subnetName, vpcName)
		return errors.Wrapf(ErrNotFound, "subnet %s in vpc %s", subnetName, vpcName)
	}

	return m.apply(subnet, rules)
}

func (m *FirewallManager) apply(subnet *store.Subnet, rules []Rule) error {
	for _, rule := range rules {
		protocol := rule.Protocol
		if protocol == "" {
			protocol = "tcp"
		}
		action := rule.Action
		if action == "" {
			action = "allow"
		}

		err := m.net.ApplyFirewallDirective(
			subnet.Namespace, protocol, rule.Port, translateAction(action))
		if err != nil {
			return err
		}
	}

	log.Infof("Applied %d firewall rules to subnet %s.", len(rules), subnet.Name)
	return nil
}

// translateAction maps a declarative action to an iptables target. Unknown
// actions pass through upper-cased, so custom targets keep working.
func translateAction(action string) string {
	switch target := strings.ToUpper(action); target {
	case "ALLOW":
		return "ACCEPT"
	case "DENY":
		return "DROP"
	default:
		return target
	}
}
