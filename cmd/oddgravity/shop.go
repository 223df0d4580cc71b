package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/oddgravity/internal/progression"
	"github.com/vovakirdan/oddgravity/internal/storage"
)

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Browse and buy cosmetics",
	Long: `List the cosmetic catalog, buy items with banked coins, and equip
what you own. Items without a price are level rewards.

Examples:
  oddgravity shop
  oddgravity shop buy skin_bolt
  oddgravity shop equip trail_dots`,
	Run: runShopList,
}

var shopBuyCmd = &cobra.Command{
	Use:   "buy <item-id>",
	Short: "Buy a cosmetic",
	Args:  cobra.ExactArgs(1),
	Run:   runShopBuy,
}

var shopEquipCmd = &cobra.Command{
	Use:   "equip <item-id>",
	Short: "Equip an owned cosmetic",
	Args:  cobra.ExactArgs(1),
	Run:   runShopEquip,
}

func init() {
	shopCmd.AddCommand(shopBuyCmd)
	shopCmd.AddCommand(shopEquipCmd)
}

func openLedger() (*storage.Store, *progression.Ledger) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	return store, progression.NewLedger(store)
}

func runShopList(_ *cobra.Command, _ []string) {
	store, ledger := openLedger()
	defer store.Close()

	skin, trail := ledger.Equipped()
	fmt.Printf("Wallet: %d coins\n\n", ledger.Coins())
	fmt.Printf("  %-20s %-22s %-6s %s\n", "ID", "Name", "Kind", "Status")
	fmt.Printf("  %-20s %-22s %-6s %s\n", "--", "----", "----", "------")

	for _, item := range progression.Catalog() {
		status := fmt.Sprintf("%d coins", item.Cost)
		switch {
		case item.ID == skin || item.ID == trail:
			status = "equipped"
		case ledger.Owns(item.ID):
			status = "owned"
		case item.Cost == 0:
			status = "level reward"
		}
		fmt.Printf("  %-20s %-22s %-6s %s\n", item.ID, item.Name, string(item.Kind), status)
	}
}

func runShopBuy(_ *cobra.Command, args []string) {
	store, ledger := openLedger()
	defer store.Close()

	id := args[0]
	if err := ledger.Purchase(id); err != nil {
		fmt.Fprintf(os.Stderr, "Cannot buy %q: %v\n", id, err)
		os.Exit(1)
	}
	item, _ := progression.ItemByID(id)
	fmt.Printf("Bought %s. Wallet: %d coins\n", item.Name, ledger.Coins())
}

func runShopEquip(_ *cobra.Command, args []string) {
	store, ledger := openLedger()
	defer store.Close()

	id := args[0]
	if err := ledger.Equip(id); err != nil {
		fmt.Fprintf(os.Stderr, "Cannot equip %q: %v\n", id, err)
		os.Exit(1)
	}
	item, _ := progression.ItemByID(id)
	fmt.Printf("Equipped %s\n", item.Name)
}
