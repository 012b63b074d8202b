// Command kvs-client is a command-line client for a kvs-server instance.
package main

import (
	"fmt"
	"os"

	"github.com/LuisBarroso37/kvs/internal/client"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultAddr = "127.0.0.1:4000"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{Use: "kvs-client"}

	root.PersistentFlags().String("addr", defaultAddr, "server IP:PORT to connect to")
	viper.BindPFlag("addr", root.PersistentFlags().Lookup("addr"))
	viper.SetEnvPrefix("KVS")
	viper.AutomaticEnv()

	root.AddCommand(newGetCmd(), newSetCmd(), newRmCmd())
	return root
}

func dial() (*client.Client, error) {
	return client.Dial(viper.GetString("addr"))
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:  "get KEY",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := dial()
			if err != nil {
				return err
			}
			defer c.Close()

			value, ok, err := c.Get(args[0])
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Key not found")
				return nil
			}
			fmt.Println(value)
			return nil
		},
	}
}

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:  "set KEY VALUE",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := dial()
			if err != nil {
				return err
			}
			defer c.Close()

			return c.Set(args[0], args[1])
		},
	}
}

func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:  "rm KEY",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := dial()
			if err != nil {
				return err
			}
			defer c.Close()

			if err := c.Remove(args[0]); err != nil {
				if err == client.ErrKeyNotFound {
					fmt.Println("Key not found")
					os.Exit(1)
				}
				return err
			}
			return nil
		},
	}
}
