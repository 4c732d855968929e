// Package procurement contains the canonical domain model for transferring
// purchase orders into supplier shopping carts and looking up supplier part
// data. Concrete supplier implementations (Mouser, DigiKey, Farnell) live in
// the infrastructure layer and implement the SupplierGateway port defined
// here.
package procurement
