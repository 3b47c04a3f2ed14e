package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tessro/heimdall/internal/core"
)

var profileImage string

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or change the active profile",
	RunE:  runProfileShow,
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active profile",
	RunE:  runProfileShow,
}

var profileSetCmd = &cobra.Command{
	Use:   "set <name>",
	Short: "Set the active profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileSet,
}

func init() {
	profileSetCmd.Flags().StringVar(&profileImage, "image", "", "avatar image URL")
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	rt, err := openEnv()
	if err != nil {
		return err
	}
	defer rt.Close()

	_, set := rt.profiles.Current()
	name := rt.profiles.Name()
	avatar := rt.profiles.Avatar()

	if JSONOutput() {
		return printJSON(map[string]any{
			"name":   name,
			"avatar": avatar,
			"set":    set,
		})
	}

	fmt.Printf("Profile: %s\n", name)
	if !set {
		fmt.Println("  (no profile selected, using default)")
		return nil
	}
	if avatar != "" {
		fmt.Printf("Avatar:  %s\n", avatar)
	}
	return nil
}

func runProfileSet(cmd *cobra.Command, args []string) error {
	rt, err := openEnv()
	if err != nil {
		return err
	}
	defer rt.Close()

	p := core.Profile{Name: args[0], Image: profileImage}
	if err := rt.profiles.Set(p); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	if JSONOutput() {
		return printJSON(map[string]any{"status": "set", "name": p.Name, "avatar": rt.profiles.Avatar()})
	}
	fmt.Printf("✓ Active profile: %s\n", p.Name)
	return nil
}
