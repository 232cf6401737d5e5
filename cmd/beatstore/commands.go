package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rarebeats-player/internal/storefront"
)

var errUsage = errors.New("invalid arguments")

type filterFlags struct {
	genre  *string
	mood   *string
	key    *string
	bpmMin *int
	bpmMax *int
	search *string
}

func bindFilterFlags(fs *flag.FlagSet) *filterFlags {
	return &filterFlags{
		genre:  fs.String("genre", "", "按流派筛选"),
		mood:   fs.String("mood", "", "按情绪筛选"),
		key:    fs.String("key", "", "按调式筛选"),
		bpmMin: fs.Int("bpm-min", 0, "最小 BPM（0 表示不限）"),
		bpmMax: fs.Int("bpm-max", 0, "最大 BPM（0 表示不限）"),
		search: fs.String("search", "", "按名称/流派/情绪搜索"),
	}
}

func (f *filterFlags) state() storefront.FilterState {
	state := storefront.FilterState{
		Genre:  *f.genre,
		Mood:   *f.mood,
		Key:    *f.key,
		Search: *f.search,
	}
	if *f.bpmMin > 0 {
		state.BPMMin = f.bpmMin
	}
	if *f.bpmMax > 0 {
		state.BPMMax = f.bpmMax
	}
	return state
}

// run 启动会话并执行单条命令
func run(ctx context.Context, client *storefront.APIClient, out io.Writer, filters storefront.FilterState, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	session := newSession(client, out)
	if err := session.Boot(ctx); err != nil {
		return err
	}
	session.SetFilters(filters)

	command, rest := args[0], args[1:]
	switch command {
	case "list":
		printProducts(out, session.Visible())
		return nil
	case "filters":
		printFacets(out, session.Facets())
		return nil
	case "show":
		product, err := lookupProduct(session, rest)
		if err != nil {
			return err
		}
		variations, err := session.LicenseOptions(ctx, product)
		if err != nil {
			return err
		}
		printProduct(out, product, variations)
		return nil
	case "add":
		if len(rest) != 2 {
			return fmt.Errorf("%w: add <product-id> <variation-id>", errUsage)
		}
		product, err := lookupProduct(session, rest[:1])
		if err != nil {
			return err
		}
		variationID, err := parseID(rest[1])
		if err != nil {
			return err
		}
		variations, err := session.LicenseOptions(ctx, product)
		if err != nil {
			return err
		}
		for _, v := range variations {
			if v.ID == variationID {
				session.ToggleLicense(product.ID, v)
				if err := session.AddToCart(ctx, product, v); err != nil {
					return err
				}
				printCart(out, session)
				return nil
			}
		}
		return fmt.Errorf("variation %d not found for product %d", variationID, product.ID)
	case "cart":
		printCart(out, session)
		return nil
	case "remove":
		if len(rest) != 1 {
			return fmt.Errorf("%w: remove <item-id>", errUsage)
		}
		if err := session.RemoveFromCart(ctx, rest[0]); err != nil {
			return err
		}
		printCart(out, session)
		return nil
	case "clear":
		return session.ClearCart(ctx)
	case "checkout":
		_, err := session.Checkout(ctx)
		return err
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
}

func lookupProduct(session *storefront.Session, args []string) (storefront.Product, error) {
	if len(args) != 1 {
		return storefront.Product{}, fmt.Errorf("%w: missing product id", errUsage)
	}
	id, err := parseID(args[0])
	if err != nil {
		return storefront.Product{}, err
	}
	product, ok := session.Product(id)
	if !ok {
		return storefront.Product{}, fmt.Errorf("product %d not found", id)
	}
	return product, nil
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: invalid id %q", errUsage, raw)
	}
	return uint(id), nil
}

func printProducts(out io.Writer, products []storefront.Product) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tGENRE\tBPM\tMOOD\tKEY\tPREVIEW")
	for _, p := range products {
		bpm := "-"
		if p.BPM != nil {
			bpm = strconv.Itoa(*p.BPM)
		}
		preview := "no"
		if p.HasAudio() {
			preview = "yes"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Genre, bpm, p.Mood, p.MusicKey, preview)
	}
	_ = w.Flush()
	fmt.Fprintf(out, "%d beats\n", len(products))
}

func printFacets(out io.Writer, facets storefront.Facets) {
	fmt.Fprintf(out, "genres: %s\n", strings.Join(facets.Genres, ", "))
	fmt.Fprintf(out, "moods:  %s\n", strings.Join(facets.Moods, ", "))
	fmt.Fprintf(out, "keys:   %s\n", strings.Join(facets.Keys, ", "))
	fmt.Fprintf(out, "bpm:    %d-%d\n", facets.BPMRange.Min, facets.BPMRange.Max)
}

func printProduct(out io.Writer, product storefront.Product, variations []storefront.Variation) {
	fmt.Fprintf(out, "%s (#%d)\n", product.Name, product.ID)
	if product.AudioURL != "" {
		fmt.Fprintf(out, "preview: %s\n", product.AudioURL)
	}
	if len(variations) == 0 {
		fmt.Fprintln(out, "no licenses")
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VARIATION\tLICENSE\tPRICE\tREGULAR")
	for _, v := range variations {
		fmt.Fprintf(w, "%d\t%s\t$%s\t$%s\n", v.ID, v.LicenseLabel(), v.Price.StringFixed(2), v.RegularPrice.StringFixed(2))
	}
	_ = w.Flush()
}

func printCart(out io.Writer, session *storefront.Session) {
	cart := session.Cart()
	if len(cart.Items) == 0 {
		fmt.Fprintln(out, "cart is empty")
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ITEM\tNAME\tLICENSE\tPRICE")
	for _, item := range cart.Items {
		fmt.Fprintf(w, "%s\t%s\t%s\t$%s\n", item.ID, item.Name, item.LicenseType, item.Price.StringFixed(2))
	}
	_ = w.Flush()
	fmt.Fprintf(out, "%d items, total $%s\n", session.CartCount(), session.CartTotal().StringFixed(2))
}
