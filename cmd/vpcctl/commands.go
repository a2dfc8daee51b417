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

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vpclab/vpcctl/core"
	"github.com/vpclab/vpcctl/logger"
	"github.com/vpclab/vpcctl/network/netops"
	"github.com/vpclab/vpcctl/network/vpcaddr"
	"github.com/vpclab/vpcctl/store"
	"github.com/vpclab/vpcctl/version"
)

const logFilePath = "/var/log/vpcctl.log"

// cli carries the shared collaborators of every subcommand.
type cli struct {
	configDir string
	verbose   bool

	store *store.Store
	net   netops.Provider
}

func (c *cli) init() error {
	logger.Setup(logFilePath, c.verbose)

	dir := c.configDir
	if dir == "" {
		dir = store.DefaultRoot()
	}

	s, err := store.New(dir)
	if err != nil {
		return err
	}
	c.store = s

	c.net, err = netops.NewProvider()
	if err != nil {
		return err
	}

	return nil
}

func newRootCommand() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "vpcctl",
		Short:         "Manage emulated Virtual Private Clouds on a Linux host",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.init()
		},
	}

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configDir, "config-dir", "", "topology store directory")

	root.AddCommand(
		newCreateVPCCommand(c),
		newDeleteVPCCommand(c),
		newListVPCsCommand(c),
		newShowVPCCommand(c),
		newAddSubnetCommand(c),
		newEnableNATCommand(c),
		newCreatePeeringCommand(c),
		newDeletePeeringCommand(c),
		newApplyFirewallCommand(c),
		newExecCommand(c),
		newVersionCommand(),
	)

	return root
}

func newCreateVPCCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "create-vpc NAME CIDR",
		Short: "Create a new VPC",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := core.NewVPCManager(c.store, c.net).Create(args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("✓ VPC '%s' created successfully with CIDR %s\n", args[0], args[1])
			return nil
		},
	}
}

func newDeleteVPCCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-vpc NAME",
		Short: "Delete a VPC",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := core.NewVPCManager(c.store, c.net).Delete(args[0]); err != nil {
				return err
			}
			fmt.Printf("✓ VPC '%s' deleted successfully\n", args[0])
			return nil
		},
	}
}

func newListVPCsCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list-vpcs",
		Short: "List all VPCs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vpcs, err := core.NewVPCManager(c.store, c.net).List()
			if err != nil {
				return err
			}

			if len(vpcs) == 0 {
				fmt.Println("No VPCs found")
				return nil
			}

			fmt.Printf("\n%-20s %-20s %-10s %-10s\n", "VPC Name", "CIDR", "Subnets", "NAT")
			fmt.Println(strings.Repeat("-", 60))
			for _, vpc := range vpcs {
				nat := "Disabled"
				if vpc.NATEnabled {
					nat = "Enabled"
				}
				fmt.Printf("%-20s %-20s %-10d %-10s\n", vpc.Name, vpc.CIDR, len(vpc.Subnets), nat)
			}
			return nil
		},
	}
}

func newShowVPCCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "show-vpc NAME",
		Short: "Show VPC details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vpc, err := core.NewVPCManager(c.store, c.net).Get(args[0])
			if err != nil {
				return err
			}

			nat := "Disabled"
			if vpc.NATEnabled {
				nat = "Enabled"
			}

			fmt.Printf("\nVPC: %s\n", vpc.Name)
			fmt.Printf("CIDR: %s\n", vpc.CIDR)
			fmt.Printf("Bridge: %s\n", vpc.Bridge)
			fmt.Printf("NAT: %s\n", nat)
			fmt.Printf("\nSubnets (%d):\n", len(vpc.Subnets))
			for _, subnet := range vpc.Subnets {
				fmt.Printf("  - %s (%s) - %s\n", subnet.Name, subnet.CIDR, subnet.Type)
			}
			return nil
		},
	}
}

func newAddSubnetCommand(c *cli) *cobra.Command {
	var subnetType string

	cmd := &cobra.Command{
		Use:   "add-subnet VPC NAME CIDR",
		Short: "Add a subnet to a VPC",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := core.NewSubnetManager(c.store, c.net).Create(args[0], args[1], args[2], subnetType)
			if err != nil {
				return err
			}
			fmt.Printf("✓ Subnet '%s' added to VPC '%s'\n", args[1], args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&subnetType, "type", store.SubnetPrivate, "subnet type (public or private)")
	return cmd
}

func newEnableNATCommand(c *cli) *cobra.Command {
	var internetInterface string

	cmd := &cobra.Command{
		Use:   "enable-nat VPC",
		Short: "Enable a NAT gateway for a VPC's public subnets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := core.NewVPCManager(c.store, c.net).EnableNAT(args[0], internetInterface)
			if err != nil {
				return err
			}
			fmt.Printf("✓ NAT gateway enabled for VPC '%s'\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&internetInterface, "interface", "eth0", "internet-facing interface")
	return cmd
}

func newCreatePeeringCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "create-peering VPC1 VPC2",
		Short: "Create a peering between two VPCs",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := core.NewPeeringManager(c.store, c.net).Create(args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("✓ Peering created between '%s' and '%s'\n", args[0], args[1])
			return nil
		},
	}
}

func newDeletePeeringCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-peering VPC1 VPC2",
		Short: "Delete a peering between two VPCs",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := core.NewPeeringManager(c.store, c.net).Delete(args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("✓ Peering deleted between '%s' and '%s'\n", args[0], args[1])
			return nil
		},
	}
}

func newApplyFirewallCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "apply-firewall VPC RULES_FILE",
		Short: "Apply a firewall rule set to a VPC subnet",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := core.NewFirewallManager(c.store, c.net).ApplyFromRuleSet(args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("✓ Firewall rules applied to VPC '%s'\n", args[0])
			return nil
		},
	}
}

func newExecCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "exec VPC SUBNET COMMAND",
		Short: "Execute a command in a subnet's namespace",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			vpc, err := c.store.GetVPC(args[0])
			if err != nil {
				return err
			}

			subnet := vpc.FindSubnet(args[1])
			if subnet == nil {
				return fmt.Errorf("subnet %s not found in vpc %s: %w", args[1], args[0], core.ErrNotFound)
			}

			// The record predates name derivation changes, prefer it.
			namespace := subnet.Namespace
			if namespace == "" {
				namespace = vpcaddr.NamespaceID(args[0], args[1])
			}

			out, err := c.net.RunInNamespace(namespace, args[2])
			fmt.Print(out)
			return err
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := version.String()
			if err != nil {
				return err
			}
			fmt.Println(info)
			return nil
		},
		// No store or provider needed to print the version.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	}
}
