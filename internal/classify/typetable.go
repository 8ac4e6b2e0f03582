package classify

// TypeMatcher is one row of the ordered transaction-type table: a pattern
// over bundle names, optional required end markers, and the extractor that
// builds the structured summary for a match.
type TypeMatcher struct {
	Name       string
	Pattern    []PatternOp
	EndMarkers []string
	Extract    ExtractorFunc
}

// DefaultTypeMatchers returns the ordered type table. Narrower and
// marker-gated patterns come first; the generic account-action fallback is
// last.
func DefaultTypeMatchers() []TypeMatcher {
	return []TypeMatcher{
		{
			Name: "Initialize Markets",
			Pattern: []PatternOp{
				{Op: OpOneOrMore, Names: []string{"Settle Cash", "Settle fCash", "Mint nToken", "Redeem nToken"}},
			},
			EndMarkers: []string{MarkerMarketsInitialized},
			Extract:    extractInitializeMarkets,
		},
		{
			Name: "Sweep Cash",
			Pattern: []PatternOp{
				{Op: OpOneOrMore, Names: []string{"Mint nToken", "Deposit"}},
			},
			EndMarkers: []string{MarkerSweepCashIntoMarkets},
			Extract:    extractSweepCash,
		},
		{
			Name: "Settle Account",
			Pattern: []PatternOp{
				{Op: OpOneOrMore, Names: []string{"Settle Cash", "Settle fCash"}},
				{Op: OpZeroOrMore, Names: []string{"Borrow Prime Cash"}},
			},
			EndMarkers: []string{MarkerAccountSettled},
			Extract:    extractSettleAccount,
		},
		{
			Name: "Liquidation",
			Pattern: []PatternOp{
				{Op: OpOptional, Names: []string{"Deposit"}},
				{Op: OpOneOrMore, Names: []string{"Transfer Asset", "Transfer fCash", "Fee Paid"}},
			},
			EndMarkers: []string{
				MarkerLiquidateLocalCurrency,
				MarkerLiquidateCollateralCurrency,
				MarkerLiquidatefCash,
			},
			Extract: extractLiquidation,
		},
		{
			Name: "Vault Entry",
			Pattern: []PatternOp{
				{Op: OpOptional, Names: []string{"Deposit"}},
				{Op: OpLiteral, Names: []string{"Vault Entry Transfer"}},
				{Op: OpZeroOrMore, Names: []string{"Vault Secondary Borrow"}},
				{Op: OpNotEnd, Names: []string{"Vault Burn"}},
			},
			Extract: extractVaultEntry,
		},
		{
			Name: "Vault Exit",
			Pattern: []PatternOp{
				{Op: OpLiteral, Names: []string{"Vault Burn"}},
				{Op: OpZeroOrMore, Names: []string{"Repay Vault Debt"}},
				{Op: OpOptional, Names: []string{"Withdraw"}},
			},
			Extract: extractVaultExit,
		},
		{
			Name: "Vault Deleverage",
			Pattern: []PatternOp{
				{Op: OpLiteral, Names: []string{"Transfer Asset"}},
				{Op: OpLiteral, Names: []string{"Vault Burn"}},
			},
			EndMarkers: []string{MarkerVaultDeleverageAccount, MarkerVaultLiquidatorProfit},
			Extract:    extractVaultDeleverage,
		},
		{
			Name: "Vault Settlement",
			Pattern: []PatternOp{
				{Op: OpOneOrMore, Names: []string{"Vault Settle"}},
				{Op: OpOptional, Names: []string{"Settle fCash"}},
			},
			Extract: extractVaultSettlement,
		},
		{
			Name: "Mint nToken",
			Pattern: []PatternOp{
				{Op: OpOptional, Names: []string{"Deposit"}},
				{Op: OpOneOrMore, Names: []string{"Mint nToken"}},
			},
			Extract: extractMintNToken,
		},
		{
			Name: "Redeem nToken",
			Pattern: []PatternOp{
				{Op: OpOneOrMore, Names: []string{"Redeem nToken"}},
				{Op: OpOptional, Names: []string{"Withdraw"}},
			},
			Extract: extractRedeemNToken,
		},
		{
			// Generic fallback. The terminator keeps an account-action
			// prefix of a vault operation from being claimed early.
			Name: "Account Action",
			Pattern: []PatternOp{
				{Op: OpOneOrMore, Names: []string{
					"Deposit", "Deposit and Transfer", "Withdraw",
					"Borrow fCash", "Lend fCash", "Repay fCash",
					"Borrow Prime Cash", "Repay Prime Cash",
					"Transfer fCash", "Transfer Asset",
					"Fee Paid", "Transfer Incentive",
				}},
				{Op: OpNotEnd, Names: []string{"Vault Entry Transfer", "Vault Burn"}},
			},
			Extract: extractAccountAction,
		},
	}
}
