// Copyright (c) 2026 The Open Transactions developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jessevdk/go-flags"
	"github.com/opentxs/otledger/boxdb"
	_ "github.com/opentxs/otledger/boxdb/bdb"
)

const defaultDbName = "boxes.db"

// Flags.
var opts = struct {
	Force  bool   `short:"f" description:"Force removal without prompt"`
	Drop   bool   `long:"drop" description:"Drop all stored boxes and receipts"`
	DbPath string `long:"db" description:"Path to box database"`
}{
	Force:  false,
	Drop:   false,
	DbPath: filepath.Join(".", defaultDbName),
}

func init() {
	_, err := flags.Parse(&opts)
	if err != nil {
		os.Exit(1)
	}
}

var (
	// Namespace keys.
	receiptNamespace = []byte("receiptstore")

	// Top-level bucket names within the receipt namespace.
	receiptsBucketName = []byte("receipts")
	boxesBucketName    = []byte("boxes")
)

func yes(s string) bool {
	switch s {
	case "y", "Y", "yes", "Yes":
		return true
	default:
		return false
	}
}

func no(s string) bool {
	switch s {
	case "n", "N", "no", "No":
		return true
	default:
		return false
	}
}

func main() {
	os.Exit(mainInt())
}

func mainInt() int {
	fmt.Println("Database path:", opts.DbPath)
	_, err := os.Stat(opts.DbPath)
	if os.IsNotExist(err) {
		fmt.Println("Database file does not exist")
		return 1
	}

	db, err := boxdb.Open("bdb", opts.DbPath)
	if err != nil {
		fmt.Println("Failed to open database:", err)
		return 1
	}
	defer db.Close()

	if opts.Drop {
		return dropReceipts(db)
	}
	return listReceipts(db)
}

// listReceipts walks the receipt namespace and prints every stored box
// and receipt, including receipts marked deleted.
func listReceipts(db boxdb.DB) int {
	ns, err := db.Namespace(receiptNamespace)
	if err != nil {
		fmt.Println("Failed to open receipt namespace:", err)
		return 1
	}
	err = ns.View(func(tx boxdb.Tx) error {
		root := tx.RootBucket()

		boxes := root.Bucket(boxesBucketName)
		if boxes != nil {
			fmt.Println("Stored boxes:")
			err := forEachTriple(boxes, func(folder, notary string,
				owner string, v []byte) error {

				fmt.Printf("  %s/%s/%s (%d bytes)\n", folder,
					notary, owner, len(v))
				return nil
			})
			if err != nil {
				return err
			}
		}

		receipts := root.Bucket(receiptsBucketName)
		if receipts == nil {
			return nil
		}
		fmt.Println("Stored receipts:")
		return forEachReceipt(receipts, func(folder, notary,
			owner string, txNum uint64, deleted bool) error {

			state := "live"
			if deleted {
				state = "deleted"
			}
			fmt.Printf("  %s/%s/%s/%d.rct (%s)\n", folder, notary,
				owner, txNum, state)
			return nil
		})
	})
	if err != nil {
		fmt.Println("Failed to walk receipt namespace:", err)
		return 1
	}
	return 0
}

// forEachTriple descends two levels of nested buckets and invokes fn for
// each leaf key/value pair.
func forEachTriple(b boxdb.Bucket, fn func(l1, l2, key string,
	v []byte) error) error {

	return b.ForEach(func(k1, v1 []byte) error {
		inner := b.Bucket(k1)
		if inner == nil {
			return nil
		}
		return inner.ForEach(func(k2, v2 []byte) error {
			leaf := inner.Bucket(k2)
			if leaf == nil {
				return nil
			}
			return leaf.ForEach(func(k3, v3 []byte) error {
				if v3 == nil {
					return nil
				}
				return fn(string(k1), string(k2), string(k3),
					v3)
			})
		})
	})
}

// forEachReceipt walks folder/notary/owner.r buckets and invokes fn for
// each stored receipt.  Receipt values carry a one-byte liveness flag
// followed by the receipt bytes.
func forEachReceipt(b boxdb.Bucket, fn func(folder, notary, owner string,
	txNum uint64, deleted bool) error) error {

	return b.ForEach(func(k1, v1 []byte) error {
		folder := b.Bucket(k1)
		if folder == nil {
			return nil
		}
		return folder.ForEach(func(k2, v2 []byte) error {
			notary := folder.Bucket(k2)
			if notary == nil {
				return nil
			}
			return notary.ForEach(func(k3, v3 []byte) error {
				owner := notary.Bucket(k3)
				if owner == nil {
					return nil
				}
				return owner.ForEach(func(k4, v4 []byte) error {
					if len(k4) != 8 || len(v4) == 0 {
						return nil
					}
					return fn(string(k1), string(k2),
						string(k3),
						binary.BigEndian.Uint64(k4),
						v4[0] != 0)
				})
			})
		})
	})
}

func dropReceipts(db boxdb.DB) int {
	for !opts.Force {
		fmt.Print("Drop all stored boxes and receipts? [y/N] ")

		scanner := bufio.NewScanner(bufio.NewReader(os.Stdin))
		if !scanner.Scan() {
			// Exit on EOF.
			return 0
		}
		err := scanner.Err()
		if err != nil {
			fmt.Println()
			fmt.Println(err)
			return 1
		}
		resp := scanner.Text()
		if yes(resp) {
			break
		}
		if no(resp) || resp == "" {
			return 0
		}

		fmt.Println("Enter yes or no.")
	}

	fmt.Println("Dropping receipt namespace")
	err := db.DeleteNamespace(receiptNamespace)
	if err != nil && err != boxdb.ErrBucketNotFound {
		fmt.Println("Failed to drop receipt namespace:", err)
		return 1
	}
	return 0
}
