package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"code.continuecash.io/continuecash/core/factory"
	"code.continuecash.io/continuecash/core/types"

	ethcmn "github.com/ethereum/go-ethereum/common"
)

var pairAddrOpts struct {
	deployer      string
	stock         string
	money         string
	logic         string
	stockDecimals uint8
	moneyDecimals uint8
}

// pairAddrCmd precomputes where a pair would be deployed, it needs no
// node, the address is a pure function of its inputs.
var pairAddrCmd = &cobra.Command{
	Use:   "pair-addr",
	Short: "Compute the deterministic address of a pair instance",
	RunE: func(cmd *cobra.Command, args []string) error {
		deployer, err := parseAddress(pairAddrOpts.deployer, "deployer")
		if err != nil {
			return err
		}
		stock, err := parseAddress(pairAddrOpts.stock, "stock")
		if err != nil {
			return err
		}
		money, err := parseAddress(pairAddrOpts.money, "money")
		if err != nil {
			return err
		}
		logic, err := parseAddress(pairAddrOpts.logic, "logic")
		if err != nil {
			return err
		}

		cfg := types.NewPairConfig(stock, money, pairAddrOpts.stockDecimals, pairAddrOpts.moneyDecimals)
		code := factory.BuildStub(logic, cfg)
		fmt.Println(factory.DeriveAddress(deployer, stock, money, code).Hex())
		return nil
	},
}

func parseAddress(s, name string) (ethcmn.Address, error) {
	if !ethcmn.IsHexAddress(s) {
		return ethcmn.Address{}, errors.Errorf("not a valid %s address: %s", name, s)
	}
	return ethcmn.HexToAddress(s), nil
}

func init() {
	fs := pairAddrCmd.Flags()
	fs.StringVar(&pairAddrOpts.deployer, "deployer", "", "address of the factory deploying the pair")
	fs.StringVar(&pairAddrOpts.stock, "stock", "", "address of the stock token")
	fs.StringVar(&pairAddrOpts.money, "money", "", "address of the money token")
	fs.StringVar(&pairAddrOpts.logic, "logic", "", "address of the logic template")
	fs.Uint8Var(&pairAddrOpts.stockDecimals, "stock-decimals", 18, "native decimals of the stock token")
	fs.Uint8Var(&pairAddrOpts.moneyDecimals, "money-decimals", 18, "native decimals of the money token")
	_ = pairAddrCmd.MarkFlagRequired("deployer")
	_ = pairAddrCmd.MarkFlagRequired("stock")
	_ = pairAddrCmd.MarkFlagRequired("money")
	_ = pairAddrCmd.MarkFlagRequired("logic")
}
