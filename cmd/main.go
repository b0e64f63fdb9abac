package main

// @title Welfare Ledger API
// @version 1.0
// @description Loan, subscription and bookkeeping API for a community welfare fund.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	Execute()
}
