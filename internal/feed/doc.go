// Package feed reads the inventory CSV feed and writes CSV backups.
//
// Both files share four columns:
//
//	product_name,product_price,product_quantity,date_updated
//
// Feed prices use the fixed "$D.DD" form and dates use MM/DD/YYYY. Reading is
// fail-fast: the first malformed row aborts the whole read and no candidates
// are returned. Backups render prices with money.Format and dates in ISO form.
package feed
