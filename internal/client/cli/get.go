package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/loreforge/loreforge/internal/models"
)

func (c *Cli) runGet(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing element ID. Usage: loreforge get <id>")
	}
	clientID := args[0]

	element, err := c.dataService.GetElement(ctx, c.projectID, clientID)
	if err != nil {
		return fmt.Errorf("failed to get element: %w", err)
	}

	c.printElement(element)

	reason, err := c.dataService.RejectionReason(ctx, c.projectID, clientID)
	if err != nil {
		return err
	}
	if reason != "" {
		c.io.Println()
		c.io.Printf("⚠ Last push rejected: %s\n", reason)
		c.io.Println("Edit the element to retry.")
	}

	return nil
}

func (c *Cli) printElement(element *models.Element) {
	payload := element.Payload

	c.io.Printf("=== [%s] %s ===\n", payload.Category, payload.Name)
	c.io.Printf("ID:      %s\n", element.ClientID)
	if element.ServerID != "" {
		c.io.Printf("Server:  %s (version %d)\n", element.ServerID, element.Version)
	} else {
		c.io.Println("Server:  not yet synced")
	}
	c.io.Printf("Updated: %s\n", element.UpdatedAt.Format("2006-01-02 15:04:05"))

	switch payload.Category {
	case models.CategoryCharacter:
		if f := payload.Character; f != nil {
			printField(c, "Species", f.Species)
			printField(c, "Occupation", f.Occupation)
			printField(c, "Biography", f.Biography)
			printField(c, "Aliases", strings.Join(f.Aliases, ", "))
		}
	case models.CategoryLocation:
		if f := payload.Location; f != nil {
			printField(c, "Region", f.Region)
			printField(c, "Population", f.Population)
			printField(c, "Description", f.Description)
		}
	case models.CategoryFaction:
		if f := payload.Faction; f != nil {
			printField(c, "Leader", f.Leader)
			printField(c, "Goals", f.Goals)
			printField(c, "Members", strings.Join(f.Members, ", "))
		}
	}

	for key, value := range payload.Extra {
		c.io.Printf("%s: %v\n", key, value)
	}

	if len(payload.Prompts) > 0 {
		c.io.Println()
		c.io.Println("Prompts:")
		for _, p := range payload.Prompts {
			c.io.Printf("  Q: %s\n", p.Question)
			c.io.Printf("  A: %s\n", p.Answer)
		}
	}
}

func printField(c *Cli, label, value string) {
	if value != "" {
		c.io.Printf("%s: %s\n", label, value)
	}
}
