package models

import "strings"

// ContractType labels the kind of agreement. The set is open: a label the
// app does not know is kept verbatim and shown as-is.
type ContractType string

const (
	TypeEmployment   ContractType = "Employment"
	TypeRental       ContractType = "Rental"
	TypeService      ContractType = "Service"
	TypePurchase     ContractType = "Purchase"
	TypePartnership  ContractType = "Partnership"
	TypeConsulting   ContractType = "Consulting"
	TypeLicense      ContractType = "License"
	TypeFranchise    ContractType = "Franchise"
	TypeDistribution ContractType = "Distribution"
	TypeMaintenance  ContractType = "Maintenance"
	TypeInsurance    ContractType = "Insurance"
	TypeLoan         ContractType = "Loan"
	TypeLease        ContractType = "Lease"
	TypeSubscription ContractType = "Subscription"
	TypeSupport      ContractType = "Support"
	TypeOther        ContractType = "Other"
)

// FormTypes are the choices offered when a contract is created by hand.
var FormTypes = []ContractType{TypeEmployment, TypeRental, TypeService, TypePurchase, TypePartnership, TypeOther}

// SampleTypes are the kinds used for generated sample contracts.
var SampleTypes = []ContractType{
	TypeEmployment, TypeRental, TypeService, TypePurchase, TypePartnership,
	TypeConsulting, TypeLicense, TypeFranchise, TypeDistribution, TypeMaintenance,
	TypeInsurance, TypeLoan, TypeLease, TypeSubscription, TypeSupport,
}

func (t ContractType) String() string { return string(t) }

// ParseType maps a label onto a known type ignoring case; anything else,
// including an empty label, becomes TypeOther.
func ParseType(label string) ContractType {
	label = strings.TrimSpace(label)
	for _, list := range [][]ContractType{FormTypes, SampleTypes} {
		for _, t := range list {
			if strings.EqualFold(string(t), label) {
				return t
			}
		}
	}
	return TypeOther
}
