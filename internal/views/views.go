package views

import (
	sq "github.com/Masterminds/squirrel"

	"fintracker/internal/contract"
)

// Every canonical view filters deleted rows on the base table and on
// each joined table, so a soft-deleted referenced entity disappears
// from denormalized siblings without touching the referencing row.

func currencyView() sq.SelectBuilder {
	return sq.Select(
		"c.iso AS iso",
		"c.name AS name",
		"c.symbol AS symbol",
		"c.decimals AS decimals",
		"c.favourite AS favourite",
		"c.sync_id AS sync_id",
		"c.last_edit AS last_edit",
	).
		From("currencies c").
		Where("c.deleted = 0")
}

// walletView folds the running balance into the row: start money plus
// the signed sum of confirmed, counted transactions dated up to today.
func walletView(today string) sq.SelectBuilder {
	return sq.Select(
		"w.id AS id",
		"w.name AS name",
		"w.icon AS icon",
		"w.currency AS currency",
		"w.note AS note",
		"w.count_in_total AS count_in_total",
		"w.start_money AS start_money",
	).
		Column(sq.Expr(
			`w.start_money + COALESCE(SUM(CASE
				WHEN t.confirmed = 1 AND t.count_in_total = 1 AND t.date <= ?
				THEN ((t.direction * 2) - 1) * t.money
				ELSE 0 END), 0) AS total_money`, today)).
		Columns(
			"w.archived AS archived",
			"w.tag AS tag",
			`w.sort_index AS "index"`,
			"w.sync_id AS sync_id",
			"w.last_edit AS last_edit",
		).
		From("wallets w").
		LeftJoin("transactions t ON t.wallet = w.id AND t.deleted = 0").
		Where("w.deleted = 0").
		GroupBy("w.id")
}

func categoryView() sq.SelectBuilder {
	return sq.Select(
		"c.id AS id",
		"c.name AS name",
		"c.icon AS icon",
		"c.type AS type",
		"c.parent AS parent",
		"p.name AS parent_name",
		"c.show_report AS show_report",
		`c.sort_index AS "index"`,
		"c.tag AS tag",
		"c.sync_id AS sync_id",
		"c.last_edit AS last_edit",
	).
		From("categories c").
		LeftJoin("categories p ON p.id = c.parent AND p.deleted = 0").
		Where("c.deleted = 0")
}

func transactionView() sq.SelectBuilder {
	return sq.Select(
		"t.id AS id",
		"t.money AS money",
		"t.date AS date",
		"t.description AS description",
		"t.category AS category",
		"c.name AS category_name",
		"c.icon AS category_icon",
		"c.type AS category_type",
		"c.tag AS category_tag",
		"c.show_report AS category_show_report",
		"t.direction AS direction",
		"t.type AS type",
		"t.wallet AS wallet",
		"w.name AS wallet_name",
		"w.icon AS wallet_icon",
		"w.currency AS wallet_currency",
		"w.count_in_total AS wallet_count_in_total",
		"w.archived AS wallet_archived",
		"w.tag AS wallet_tag",
		"t.place AS place",
		"pl.name AS place_name",
		"t.note AS note",
		"t.event AS event",
		"e.name AS event_name",
		"t.debt AS debt",
		"t.saving AS saving",
		"t.recurrence AS recurrence",
		"t.confirmed AS confirmed",
		"t.count_in_total AS count_in_total",
		`(SELECT GROUP_CONCAT('<' || tp.person_id || '>')
			FROM transaction_people tp
			WHERE tp.transaction_id = t.id AND tp.deleted = 0) AS people_ids`,
		`(SELECT GROUP_CONCAT('<' || ta.attachment_id || '>')
			FROM transaction_attachments ta
			WHERE ta.transaction_id = t.id AND ta.deleted = 0) AS attachment_ids`,
		"t.sync_id AS sync_id",
		"t.last_edit AS last_edit",
	).
		From("transactions t").
		LeftJoin("categories c ON c.id = t.category AND c.deleted = 0").
		LeftJoin("wallets w ON w.id = t.wallet AND w.deleted = 0").
		LeftJoin("places pl ON pl.id = t.place AND pl.deleted = 0").
		LeftJoin("events e ON e.id = t.event AND e.deleted = 0").
		Where("t.deleted = 0")
}

// transferView flattens the two or three underlying legs. Money and
// the shared flags come from the outgoing leg; the tax amount is zero
// when no tax leg exists.
func transferView() sq.SelectBuilder {
	return sq.Select(
		"f.id AS id",
		"f.description AS description",
		"f.date AS date",
		"f.transaction_from AS transaction_from",
		"f.transaction_to AS transaction_to",
		"f.transaction_tax AS transaction_tax",
		"tf.money AS money",
		"COALESCE(tx.money, 0) AS tax_money",
		"tf.wallet AS wallet_from",
		"wf.name AS wallet_from_name",
		"tt.wallet AS wallet_to",
		"wt.name AS wallet_to_name",
		"f.note AS note",
		"f.place AS place",
		"pl.name AS place_name",
		"f.event AS event",
		"e.name AS event_name",
		"f.recurrence AS recurrence",
		"tf.confirmed AS confirmed",
		"tf.count_in_total AS count_in_total",
		`(SELECT GROUP_CONCAT('<' || fp.person_id || '>')
			FROM transfer_people fp
			WHERE fp.transfer_id = f.id AND fp.deleted = 0) AS people_ids`,
		`(SELECT GROUP_CONCAT('<' || fa.attachment_id || '>')
			FROM transfer_attachments fa
			WHERE fa.transfer_id = f.id AND fa.deleted = 0) AS attachment_ids`,
		"f.sync_id AS sync_id",
		"f.last_edit AS last_edit",
	).
		From("transfers f").
		LeftJoin("transactions tf ON tf.id = f.transaction_from AND tf.deleted = 0").
		LeftJoin("transactions tt ON tt.id = f.transaction_to AND tt.deleted = 0").
		LeftJoin("transactions tx ON tx.id = f.transaction_tax AND tx.deleted = 0").
		LeftJoin("wallets wf ON wf.id = tf.wallet AND wf.deleted = 0").
		LeftJoin("wallets wt ON wt.id = tt.wallet AND wt.deleted = 0").
		LeftJoin("places pl ON pl.id = f.place AND pl.deleted = 0").
		LeftJoin("events e ON e.id = f.event AND e.deleted = 0").
		Where("f.deleted = 0")
}

func debtView() sq.SelectBuilder {
	return sq.Select(
		"d.id AS id",
		"d.type AS type",
		"d.icon AS icon",
		"d.description AS description",
		"d.date AS date",
		"d.expiration_date AS expiration_date",
		"d.wallet AS wallet",
		"w.name AS wallet_name",
		"d.note AS note",
		"d.place AS place",
		"pl.name AS place_name",
		"d.money AS money",
		`(SELECT COALESCE(SUM(((x.direction * 2) - 1) * x.money), 0)
			FROM transactions x
			JOIN categories sc ON sc.id = x.category
			WHERE x.debt = d.id AND x.deleted = 0 AND x.confirmed = 1
			  AND sc.tag IN ('paid_debt', 'paid_credit')) AS progress`,
		"d.archived AS archived",
		`(SELECT GROUP_CONCAT('<' || dp.person_id || '>')
			FROM debt_people dp
			WHERE dp.debt_id = d.id AND dp.deleted = 0) AS people_ids`,
		"d.sync_id AS sync_id",
		"d.last_edit AS last_edit",
	).
		From("debts d").
		LeftJoin("wallets w ON w.id = d.wallet AND w.deleted = 0").
		LeftJoin("places pl ON pl.id = d.place AND pl.deleted = 0").
		Where("d.deleted = 0")
}

// budgetView computes progress according to the budget type: expense
// budgets add up outgoing money, income budgets incoming money, and
// category budgets the signed total of the category and its children.
// Only confirmed, counted transactions in linked wallets and inside
// the budget window contribute.
func budgetView() sq.SelectBuilder {
	return sq.Select(
		"b.id AS id",
		"b.type AS type",
		"b.category AS category",
		"c.name AS category_name",
		"b.start_date AS start_date",
		"b.end_date AS end_date",
		"b.money AS money",
		"b.currency AS currency",
		`(SELECT COALESCE(SUM(CASE
				WHEN b.type = 0 AND x.direction = 0 THEN x.money
				WHEN b.type = 1 AND x.direction = 1 THEN x.money
				WHEN b.type = 2 AND (x.category = b.category OR xc.parent = b.category)
				THEN ((x.direction * 2) - 1) * x.money
				ELSE 0 END), 0)
			FROM transactions x
			JOIN budget_wallets bw ON bw.wallet_id = x.wallet
				AND bw.budget_id = b.id AND bw.deleted = 0
			LEFT JOIN categories xc ON xc.id = x.category
			WHERE x.deleted = 0 AND x.confirmed = 1 AND x.count_in_total = 1
			  AND x.date >= b.start_date AND x.date <= b.end_date) AS progress`,
		`(SELECT GROUP_CONCAT('<' || bw2.wallet_id || '>')
			FROM budget_wallets bw2
			WHERE bw2.budget_id = b.id AND bw2.deleted = 0) AS wallet_ids`,
		"b.sync_id AS sync_id",
		"b.last_edit AS last_edit",
	).
		From("budgets b").
		LeftJoin("categories c ON c.id = b.category AND c.deleted = 0").
		Where("b.deleted = 0")
}

func savingView() sq.SelectBuilder {
	return sq.Select(
		"s.id AS id",
		"s.description AS description",
		"s.icon AS icon",
		"s.start_money AS start_money",
		"s.end_money AS end_money",
		"s.wallet AS wallet",
		"w.name AS wallet_name",
		"s.end_date AS end_date",
		"s.complete AS complete",
		"s.note AS note",
		`s.start_money + (SELECT COALESCE(SUM(CASE
				WHEN sc.tag = 'saving_deposit' THEN x.money
				WHEN sc.tag = 'saving_withdraw' THEN -x.money
				ELSE 0 END), 0)
			FROM transactions x
			JOIN categories sc ON sc.id = x.category
			WHERE x.saving = s.id AND x.deleted = 0 AND x.confirmed = 1) AS progress`,
		"s.sync_id AS sync_id",
		"s.last_edit AS last_edit",
	).
		From("savings s").
		LeftJoin("wallets w ON w.id = s.wallet AND w.deleted = 0").
		Where("s.deleted = 0")
}

// eventView reports spending per currency as a flattened
// "ISO:amount" list, one entry per currency touched by the event.
func eventView() sq.SelectBuilder {
	return sq.Select(
		"e.id AS id",
		"e.name AS name",
		"e.icon AS icon",
		"e.note AS note",
		"e.start_date AS start_date",
		"e.end_date AS end_date",
		`(SELECT GROUP_CONCAT(cur || ':' || total)
			FROM (SELECT w.currency AS cur,
					SUM(((x.direction * 2) - 1) * x.money) AS total
				FROM transactions x
				JOIN wallets w ON w.id = x.wallet
				WHERE x.event = e.id AND x.deleted = 0 AND x.confirmed = 1
				GROUP BY w.currency)) AS money_totals`,
		"e.sync_id AS sync_id",
		"e.last_edit AS last_edit",
	).
		From("events e").
		Where("e.deleted = 0")
}

func placeView() sq.SelectBuilder {
	return sq.Select(
		"p.id AS id",
		"p.name AS name",
		"p.icon AS icon",
		"p.address AS address",
		"p.latitude AS latitude",
		"p.longitude AS longitude",
		"p.sync_id AS sync_id",
		"p.last_edit AS last_edit",
	).
		From("places p").
		Where("p.deleted = 0")
}

func personView() sq.SelectBuilder {
	return sq.Select(
		"p.id AS id",
		"p.name AS name",
		"p.icon AS icon",
		"p.note AS note",
		"p.sync_id AS sync_id",
		"p.last_edit AS last_edit",
	).
		From("people p").
		Where("p.deleted = 0")
}

func attachmentView() sq.SelectBuilder {
	return sq.Select(
		"a.id AS id",
		"a.file AS file",
		"a.name AS name",
		"a.type AS type",
		"a.size AS size",
		"a.sync_id AS sync_id",
		"a.last_edit AS last_edit",
	).
		From("attachments a").
		Where("a.deleted = 0")
}

func transactionModelView() sq.SelectBuilder {
	return sq.Select(
		"m.id AS id",
		"m.money AS money",
		"m.description AS description",
		"m.category AS category",
		"c.name AS category_name",
		"c.icon AS category_icon",
		"m.direction AS direction",
		"m.wallet AS wallet",
		"w.name AS wallet_name",
		"m.place AS place",
		"pl.name AS place_name",
		"m.note AS note",
		"m.event AS event",
		"e.name AS event_name",
		"m.confirmed AS confirmed",
		"m.count_in_total AS count_in_total",
		"m.sync_id AS sync_id",
		"m.last_edit AS last_edit",
	).
		From("transaction_models m").
		LeftJoin("categories c ON c.id = m.category AND c.deleted = 0").
		LeftJoin("wallets w ON w.id = m.wallet AND w.deleted = 0").
		LeftJoin("places pl ON pl.id = m.place AND pl.deleted = 0").
		LeftJoin("events e ON e.id = m.event AND e.deleted = 0").
		Where("m.deleted = 0")
}

func transferModelView() sq.SelectBuilder {
	return sq.Select(
		"m.id AS id",
		"m.description AS description",
		"m.wallet_from AS wallet_from",
		"wf.name AS wallet_from_name",
		"m.wallet_to AS wallet_to",
		"wt.name AS wallet_to_name",
		"m.money AS money",
		"m.tax_money AS tax_money",
		"m.note AS note",
		"m.place AS place",
		"pl.name AS place_name",
		"m.event AS event",
		"e.name AS event_name",
		"m.confirmed AS confirmed",
		"m.count_in_total AS count_in_total",
		"m.sync_id AS sync_id",
		"m.last_edit AS last_edit",
	).
		From("transfer_models m").
		LeftJoin("wallets wf ON wf.id = m.wallet_from AND wf.deleted = 0").
		LeftJoin("wallets wt ON wt.id = m.wallet_to AND wt.deleted = 0").
		LeftJoin("places pl ON pl.id = m.place AND pl.deleted = 0").
		LeftJoin("events e ON e.id = m.event AND e.deleted = 0").
		Where("m.deleted = 0")
}

func recurringTransactionView() sq.SelectBuilder {
	return sq.Select(
		"r.id AS id",
		"r.money AS money",
		"r.description AS description",
		"r.category AS category",
		"c.name AS category_name",
		"r.direction AS direction",
		"r.wallet AS wallet",
		"w.name AS wallet_name",
		"r.place AS place",
		"pl.name AS place_name",
		"r.note AS note",
		"r.event AS event",
		"e.name AS event_name",
		"r.confirmed AS confirmed",
		"r.count_in_total AS count_in_total",
		"r.start_date AS start_date",
		"r.last_occurrence AS last_occurrence",
		"r.next_occurrence AS next_occurrence",
		"r.rule AS rule",
		"r.sync_id AS sync_id",
		"r.last_edit AS last_edit",
	).
		From("recurring_transactions r").
		LeftJoin("categories c ON c.id = r.category AND c.deleted = 0").
		LeftJoin("wallets w ON w.id = r.wallet AND w.deleted = 0").
		LeftJoin("places pl ON pl.id = r.place AND pl.deleted = 0").
		LeftJoin("events e ON e.id = r.event AND e.deleted = 0").
		Where("r.deleted = 0")
}

func recurringTransferView() sq.SelectBuilder {
	return sq.Select(
		"r.id AS id",
		"r.description AS description",
		"r.wallet_from AS wallet_from",
		"wf.name AS wallet_from_name",
		"r.wallet_to AS wallet_to",
		"wt.name AS wallet_to_name",
		"r.money AS money",
		"r.tax_money AS tax_money",
		"r.note AS note",
		"r.place AS place",
		"pl.name AS place_name",
		"r.event AS event",
		"e.name AS event_name",
		"r.confirmed AS confirmed",
		"r.count_in_total AS count_in_total",
		"r.start_date AS start_date",
		"r.last_occurrence AS last_occurrence",
		"r.next_occurrence AS next_occurrence",
		"r.rule AS rule",
		"r.sync_id AS sync_id",
		"r.last_edit AS last_edit",
	).
		From("recurring_transfers r").
		LeftJoin("wallets wf ON wf.id = r.wallet_from AND wf.deleted = 0").
		LeftJoin("wallets wt ON wt.id = r.wallet_to AND wt.deleted = 0").
		LeftJoin("places pl ON pl.id = r.place AND pl.deleted = 0").
		LeftJoin("events e ON e.id = r.event AND e.deleted = 0").
		Where("r.deleted = 0")
}

// fieldsByKind lists the virtual fields each canonical view exposes.
// Projection and filter names are validated against it.
var fieldsByKind = map[contract.Kind]map[string]bool{
	contract.KindCurrency: fieldSet(
		contract.CurrencyISO, contract.CurrencyName, contract.CurrencySymbol,
		contract.CurrencyDecimals, contract.CurrencyFavourite,
	),
	contract.KindWallet: fieldSet(
		contract.FieldID, contract.WalletName, contract.WalletIcon,
		contract.WalletCurrency, contract.WalletNote, contract.WalletCountInTotal,
		contract.WalletStartMoney, contract.WalletTotalMoney, contract.WalletArchived,
		contract.WalletTag, contract.WalletIndex,
	),
	contract.KindCategory: fieldSet(
		contract.FieldID, contract.CategoryName, contract.CategoryIcon,
		contract.CategoryType, contract.CategoryParent, contract.CategoryParentName,
		contract.CategoryShowReport, contract.CategoryIndex, contract.CategoryTag,
	),
	contract.KindTransaction: fieldSet(
		contract.FieldID, contract.TransactionMoney, contract.TransactionDate,
		contract.TransactionDescription, contract.TransactionCategory,
		contract.TransactionCategoryName, contract.TransactionCategoryIcon,
		contract.TransactionCategoryType, contract.TransactionCategoryTag,
		contract.TransactionCategoryShowReport, contract.TransactionDirection,
		contract.TransactionType, contract.TransactionWallet,
		contract.TransactionWalletName, contract.TransactionWalletIcon,
		contract.TransactionWalletCurrency, contract.TransactionWalletCountInTotal,
		contract.TransactionWalletArchived, contract.TransactionWalletTag,
		contract.TransactionPlace, contract.TransactionPlaceName,
		contract.TransactionNote, contract.TransactionEvent,
		contract.TransactionEventName, contract.TransactionDebt,
		contract.TransactionSaving, contract.TransactionRecurrence,
		contract.TransactionConfirmed, contract.TransactionCountInTotal,
		contract.TransactionPeopleIDs, contract.TransactionAttachmentIDs,
	),
	contract.KindTransfer: fieldSet(
		contract.FieldID, contract.TransferDescription, contract.TransferDate,
		contract.TransferFrom, contract.TransferTo, contract.TransferTax,
		contract.TransferMoney, contract.TransferTaxMoney,
		contract.TransferWalletFrom, contract.TransferWalletFromName,
		contract.TransferWalletTo, contract.TransferWalletToName,
		contract.TransferNote, contract.TransferPlace, contract.TransferPlaceName,
		contract.TransferEvent, contract.TransferEventName,
		contract.TransferRecurrence, contract.TransferConfirmed,
		contract.TransferCountInTotal, contract.TransferPeopleIDs,
		contract.TransferAttachmentIDs,
	),
	contract.KindDebt: fieldSet(
		contract.FieldID, contract.DebtType, contract.DebtIcon,
		contract.DebtDescription, contract.DebtDate, contract.DebtExpirationDate,
		contract.DebtWallet, contract.DebtWalletName, contract.DebtNote,
		contract.DebtPlace, contract.DebtPlaceName, contract.DebtMoney,
		contract.DebtProgress, contract.DebtArchived, contract.DebtPeopleIDs,
	),
	contract.KindBudget: fieldSet(
		contract.FieldID, contract.BudgetType, contract.BudgetCategory,
		contract.BudgetCategoryName, contract.BudgetStartDate,
		contract.BudgetEndDate, contract.BudgetMoney, contract.BudgetCurrency,
		contract.BudgetProgress, contract.BudgetWalletIDs,
	),
	contract.KindSaving: fieldSet(
		contract.FieldID, contract.SavingDescription, contract.SavingIcon,
		contract.SavingStartMoney, contract.SavingEndMoney, contract.SavingWallet,
		contract.SavingWalletName, contract.SavingEndDate, contract.SavingComplete,
		contract.SavingNote, contract.SavingProgress,
	),
	contract.KindEvent: fieldSet(
		contract.FieldID, contract.EventName, contract.EventIcon,
		contract.EventNote, contract.EventStartDate, contract.EventEndDate,
		contract.EventMoneyTotals,
	),
	contract.KindPlace: fieldSet(
		contract.FieldID, contract.PlaceName, contract.PlaceIcon,
		contract.PlaceAddress, contract.PlaceLatitude, contract.PlaceLongitude,
	),
	contract.KindPerson: fieldSet(
		contract.FieldID, contract.PersonName, contract.PersonIcon,
		contract.PersonNote,
	),
	contract.KindAttachment: fieldSet(
		contract.FieldID, contract.AttachmentFile, contract.AttachmentName,
		contract.AttachmentType, contract.AttachmentSize,
	),
	contract.KindTransactionModel: fieldSet(
		contract.FieldID, contract.TransactionMoney, contract.TransactionDescription,
		contract.TransactionCategory, contract.TransactionCategoryName,
		contract.TransactionCategoryIcon, contract.TransactionDirection,
		contract.TransactionWallet, contract.TransactionWalletName,
		contract.TransactionPlace, contract.TransactionPlaceName,
		contract.TransactionNote, contract.TransactionEvent,
		contract.TransactionEventName, contract.TransactionConfirmed,
		contract.TransactionCountInTotal,
	),
	contract.KindTransferModel: fieldSet(
		contract.FieldID, contract.TransferDescription,
		contract.TransferWalletFrom, contract.TransferWalletFromName,
		contract.TransferWalletTo, contract.TransferWalletToName,
		contract.TransferMoney, contract.TransferTaxMoney, contract.TransferNote,
		contract.TransferPlace, contract.TransferPlaceName,
		contract.TransferEvent, contract.TransferEventName,
		contract.TransferConfirmed, contract.TransferCountInTotal,
	),
	contract.KindRecurringTransaction: fieldSet(
		contract.FieldID, contract.TransactionMoney, contract.TransactionDescription,
		contract.TransactionCategory, contract.TransactionCategoryName,
		contract.TransactionDirection, contract.TransactionWallet,
		contract.TransactionWalletName, contract.TransactionPlace,
		contract.TransactionPlaceName, contract.TransactionNote,
		contract.TransactionEvent, contract.TransactionEventName,
		contract.TransactionConfirmed, contract.TransactionCountInTotal,
		contract.RecurrenceStartDate, contract.RecurrenceLastOccurrence,
		contract.RecurrenceNextOccurrence, contract.RecurrenceRule,
	),
	contract.KindRecurringTransfer: fieldSet(
		contract.FieldID, contract.TransferDescription,
		contract.TransferWalletFrom, contract.TransferWalletFromName,
		contract.TransferWalletTo, contract.TransferWalletToName,
		contract.TransferMoney, contract.TransferTaxMoney, contract.TransferNote,
		contract.TransferPlace, contract.TransferPlaceName,
		contract.TransferEvent, contract.TransferEventName,
		contract.TransferConfirmed, contract.TransferCountInTotal,
		contract.RecurrenceStartDate, contract.RecurrenceLastOccurrence,
		contract.RecurrenceNextOccurrence, contract.RecurrenceRule,
	),
}

func fieldSet(names ...string) map[string]bool {
	set := make(map[string]bool, len(names)+2)
	for _, name := range names {
		set[name] = true
	}
	set[contract.FieldSyncID] = true
	set[contract.FieldLastEdit] = true
	return set
}
