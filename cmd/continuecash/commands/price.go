package cmd

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"code.continuecash.io/continuecash/core/pricing"
	"code.continuecash.io/continuecash/core/types"
	"code.continuecash.io/continuecash/libs/num"
)

// humanPrice renders an 18-decimal fixed point price at its natural
// scale.
func humanPrice(p *num.Uint) string {
	return num.DecimalFromUint(p).Shift(-types.PriceScaleDecimals).String()
}

var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "Convert between full prices and packed 32-bit codewords",
}

var pricePackCmd = &cobra.Command{
	Use:   "pack <price>",
	Short: "Pack an 18-decimal price into its 32-bit codeword",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		price, ok := num.UintFromString(args[0], 10)
		if !ok {
			return errors.Errorf("not a valid price: %s", args[0])
		}
		packed, err := pricing.PackPrice(price)
		if err != nil {
			return err
		}
		decoded := pricing.UnpackPrice(packed)
		fmt.Printf("codeword: 0x%08x\n", packed)
		fmt.Printf("decoded:  %s (%s)\n", decoded, humanPrice(decoded))
		return nil
	},
}

var priceUnpackCmd = &cobra.Command{
	Use:   "unpack <codeword>",
	Short: "Unpack a 32-bit codeword into its 18-decimal price",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		packed, err := strconv.ParseUint(args[0], 0, 32)
		if err != nil {
			return errors.Errorf("not a valid codeword: %s", args[0])
		}
		price := pricing.UnpackPrice(uint32(packed))
		fmt.Printf("price: %s (%s)\n", price, humanPrice(price))
		return nil
	},
}

func init() {
	priceCmd.AddCommand(pricePackCmd)
	priceCmd.AddCommand(priceUnpackCmd)
}
