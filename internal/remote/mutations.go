package remote

const loginMutation = `
mutation login($username: String!, $password: String!, $logoutAll: Boolean) {
  login(username: $username, password: $password, logoutAll: $logoutAll) {
    token
  }
}`

const saveOrderMutation = `
mutation saveOrder(
  $trackingNumber: String
  $orderLineItems: [OrderLineItemInput]
  $customer: ID
  $warehouse: ID
  $orderId: String
  $id: ID
  $carrier: String
  $orderDate: Date
  $shippingAddress: ShippingAddressInput
  $orderType: String
  $insuranceRequired: Boolean
  $toValidAddress: Boolean
) {
  saveOrder(
    orderInput: {
      trackingNumber: $trackingNumber
      orderLineItems: $orderLineItems
      customer: $customer
      warehouse: $warehouse
      orderId: $orderId
      id: $id
      carrier: $carrier
      orderDate: $orderDate
      shippingAddress: $shippingAddress
      orderType: $orderType
      insuranceRequired: $insuranceRequired
      toValidAddress: $toValidAddress
    }
  ) {
    message
  }
}`

const saveConsignmentMutation = `
mutation saveConsignment(
  $consignmentNumber: String
  $supplier: String
  $trackingNumber: String
  $customer: ID
  $warehouse: ID
  $carrier: String
  $consignmentDate: Date
  $orderChannel: String
  $items: [ConsignmentItemInput]
  $dropship: DropshipInput
) {
  saveConsignment(
    consignmentInput: {
      consignmentNumber: $consignmentNumber
      supplier: $supplier
      trackingNumber: $trackingNumber
      customer: $customer
      warehouse: $warehouse
      carrier: $carrier
      consignmentDate: $consignmentDate
      orderChannel: $orderChannel
      items: $items
      dropship: $dropship
    }
  ) {
    message
  }
}`
