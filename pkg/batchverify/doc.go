/*
Package batchverify checks many secp256k1 ECDSA signatures at once.

Records are read from JSON or CSV files.  Each record names the public key in
SEC form, the signature either as DER hex or as separate r and s values, and
the signed digest either directly as z or as a message that is hashed with
hash256 first.

Basic usage:

	client := batchverify.NewClient().
		WithParser(&batchverify.CSVParser{}).
		WithWorkers(8)

	report, err := client.VerifyFile(ctx, "signatures.csv")
	if err != nil {
		return err
	}
	fmt.Printf("%d valid, %d invalid\n", report.Valid, report.Invalid)

Verification runs on a bounded pool of workers and honours context
cancellation.  Results come back in input order.
*/
package batchverify
