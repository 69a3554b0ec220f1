package i18n

import "github.com/hamidrz1977-bot/jawab-bot/internal/domain"

// defaults holds the compiled-in text per language. Keys are lower-case; the
// matching override variables are the upper-cased key.
var defaults = map[domain.Language]map[string]string{
	domain.LanguageFA: {
		"welcome":           "✨ به {brand} خوش آمدید ✨\nبرای شروع منو 🗂 را بزنید.",
		"choose":            "یک گزینه را انتخاب کنید:",
		"btn_menu":          "🗂 منو",
		"back":              "↩️ بازگشت",
		"btn_products":      "🛍 محصولات",
		"btn_cart":          "🧺 سبد خرید",
		"btn_prices":        "💵 قیمت‌ها",
		"btn_about":         "ℹ️ درباره ما",
		"btn_support":       "🛟 پشتیبانی",
		"btn_language":      "🌐 زبان",
		"btn_quote":         "📝 درخواست مشاوره",
		"btn_send_phone":    "📞 ارسال شماره",
		"btn_send_location": "📍 ارسال لوکیشن",
		"btn_order":         "✅ ثبت سفارش",
		"btn_confirm":       "✅ تایید",
		"btn_empty_cart":    "🧹 خالی کردن سبد",
		"btn_cancel":        "❌ انصراف",
		"need_phone":        "برای ثبت سفارش، لطفاً «📞 ارسال شماره» را بزنید.",
		"lead_need_phone":   "برای ثبت درخواست، لطفاً «📞 ارسال شماره» را بزنید.",
		"order_saved":       "سفارش شما ثبت شد. شماره سفارش: #{oid}\nمتشکریم.",
		"lead_saved":        "درخواست شما ثبت شد. کد پیگیری: #{lid}\nبه‌زودی با شما تماس می‌گیریم.",
		"lead_prompt":       "گزینه انتخابی: {package}\nبرای ارسال درخواست «✅ تایید» را بزنید.",
		"packages":          "یک پکیج را انتخاب کنید:",
		"packages_empty":    "فعلاً پکیجی در دسترس نیست.",
		"phone_ok":          "شماره شما ثبت شد.",
		"unknown":           "متوجه نشدم. از دکمه‌ها استفاده کنید.",
		"catalog_empty":     "کالکشن خالی است.",
		"ask_address":       "لطفاً آدرس خود را ارسال کنید یا از «📍 ارسال لوکیشن» استفاده کنید.",
		"cart_empty":        "سبد خرید شما خالی است.",
		"cart_cleared":      "سبد خرید خالی شد.",
		"cart_total":        "جمع کل",
		"added_to_cart":     "به سبد اضافه شد: {name} — {price}",
		"out_of_stock":      "متأسفیم، موجودی این کالا تمام شده است.",
		"categories":        "دسته‌بندی‌ها:",
		"category_products": "محصولات {category}:",
		"category_empty":    "محصولی در این دسته وجود ندارد.",
		"no_permission":     "شما به این دستور دسترسی ندارید.",
		"sync_ok":           "کاتالوگ همگام شد: {n} کالا.",
		"sync_failed":       "همگام‌سازی ناموفق بود:",
		"report":            "گزارش ({period}): سفارش‌ها {count} | درآمد {revenue}",
		"stats":             "کاربران: {users}\nپیام‌ها: {messages} (۲۴ ساعت اخیر: {messages24h})\nسفارش‌ها: {orders}\nزبان‌ها: {langs}",
		"broadcast_usage":   "استفاده: /broadcast <متن>",
		"broadcast_queued":  "پیام برای {n} کاربر در صف ارسال قرار گرفت.",
		"lang_pick":         "زبان خود را انتخاب کنید:",
		"lang_set":          "زبان به فارسی تغییر کرد.",
		"setlang_usage":     "استفاده: /setlang FA|EN|AR",
		"setlang_ok":        "زبان پیش‌فرض اکنون {lang} است.",
		"broadcast_capped":  "پیام برای {n} کاربر در صف ارسال قرار گرفت؛ {skipped} کاربر به دلیل سقف ارسال کنار گذاشته شدند.",
		"order_usage":       "استفاده: /order <شماره سفارش>",
		"order_not_found":   "سفارش #{oid} پیدا نشد.",
		"temp_error":        "⚠️ خطای موقت. دوباره تلاش کنید.",
		"cancelled":         "لغو شد.",
		"support_title":     "پشتیبانی 🛟",
		"support_tg":        "تلگرام",
		"support_mail":      "ایمیل",
		"support_wa":        "واتساپ",
		"support_ig":        "اینستاگرام",
		"support_none":      "راه ارتباطی ثبت نشده است.",
	},
	domain.LanguageEN: {
		"welcome":           "✨ Welcome to {brand} ✨\nTap Menu 🗂 to start.",
		"choose":            "Please choose:",
		"btn_menu":          "🗂 Menu",
		"back":              "↩️ Back",
		"btn_products":      "🛍 Products",
		"btn_cart":          "🧺 Cart",
		"btn_prices":        "💵 Prices",
		"btn_about":         "ℹ️ About",
		"btn_support":       "🛟 Support",
		"btn_language":      "🌐 Language",
		"btn_quote":         "📝 Request a quote",
		"btn_send_phone":    "📞 Share phone",
		"btn_send_location": "📍 Send location",
		"btn_order":         "✅ Place order",
		"btn_confirm":       "✅ Confirm",
		"btn_empty_cart":    "🧹 Empty cart",
		"btn_cancel":        "❌ Cancel",
		"need_phone":        "To place the order, tap “📞 Share phone”.",
		"lead_need_phone":   "To send your request, tap “📞 Share phone”.",
		"order_saved":       "Your order was saved. Order ID: #{oid}\nThank you.",
		"lead_saved":        "Your request was received. Reference: #{lid}\nWe will contact you soon.",
		"lead_prompt":       "You selected: {package}\nTap “✅ Confirm” to send your request.",
		"packages":          "Choose a package:",
		"packages_empty":    "No packages are available right now.",
		"phone_ok":          "Your phone is saved.",
		"unknown":           "Sorry, I didn't get that. Use the buttons.",
		"catalog_empty":     "Catalog is empty.",
		"ask_address":       "Please send your address or use “📍 Send location”.",
		"cart_empty":        "Your cart is empty.",
		"cart_cleared":      "Cart cleared.",
		"cart_total":        "Total",
		"added_to_cart":     "Added to cart: {name} — {price}",
		"out_of_stock":      "Sorry, out of stock.",
		"categories":        "Categories:",
		"category_products": "Products in {category}:",
		"category_empty":    "No products in this category.",
		"no_permission":     "You don't have permission for this command.",
		"sync_ok":           "Catalog synced: {n} items.",
		"sync_failed":       "Sync failed:",
		"report":            "Report ({period}): Orders {count} | Revenue {revenue}",
		"stats":             "Users: {users}\nMessages: {messages} (last 24h: {messages24h})\nOrders: {orders}\nLanguages: {langs}",
		"broadcast_usage":   "Usage: /broadcast <text>",
		"broadcast_queued":  "Broadcast queued for {n} users.",
		"lang_pick":         "Choose your language:",
		"lang_set":          "Language set to English.",
		"setlang_usage":     "Usage: /setlang FA|EN|AR",
		"setlang_ok":        "Default language is now {lang}.",
		"broadcast_capped":  "Broadcast queued for {n} users; {skipped} skipped by the recipient limit.",
		"order_usage":       "Usage: /order <order id>",
		"order_not_found":   "Order #{oid} not found.",
		"temp_error":        "⚠️ Temporary error. Try again.",
		"cancelled":         "Cancelled.",
		"support_title":     "Support 🛟",
		"support_tg":        "Telegram",
		"support_mail":      "Email",
		"support_wa":        "WhatsApp",
		"support_ig":        "Instagram",
		"support_none":      "No support channels are configured.",
	},
	domain.LanguageAR: {
		"welcome":           "✨ مرحباً بـ {brand} ✨\nاضغط القائمة 🗂 للبدء.",
		"choose":            "اختر خياراً:",
		"btn_menu":          "🗂 القائمة",
		"back":              "↩️ رجوع",
		"btn_products":      "🛍 المنتجات",
		"btn_cart":          "🧺 سلة التسوق",
		"btn_prices":        "💵 الأسعار",
		"btn_about":         "ℹ️ من نحن",
		"btn_support":       "🛟 الدعم",
		"btn_language":      "🌐 اللغة",
		"btn_quote":         "📝 طلب عرض سعر",
		"btn_send_phone":    "📞 إرسال الرقم",
		"btn_send_location": "📍 إرسال الموقع",
		"btn_order":         "✅ تأكيد الطلب",
		"btn_confirm":       "✅ تأكيد",
		"btn_empty_cart":    "🧹 إفراغ السلة",
		"btn_cancel":        "❌ إلغاء",
		"need_phone":        "لإتمام الطلب اضغط «📞 إرسال الرقم».",
		"lead_need_phone":   "لإرسال طلبك اضغط «📞 إرسال الرقم».",
		"order_saved":       "تم حفظ طلبك. رقم الطلب: #{oid}\nشكراً.",
		"lead_saved":        "تم استلام طلبك. رقم المتابعة: #{lid}\nسنتواصل معك قريباً.",
		"lead_prompt":       "اخترت: {package}\nاضغط «✅ تأكيد» لإرسال طلبك.",
		"packages":          "اختر باقة:",
		"packages_empty":    "لا توجد باقات متاحة حالياً.",
		"phone_ok":          "تم حفظ رقمك.",
		"unknown":           "لم أفهم. استخدم الأزرار.",
		"catalog_empty":     "الكاتالوج فارغ.",
		"ask_address":       "الرجاء إرسال العنوان أو استخدام «📍 إرسال الموقع».",
		"cart_empty":        "سلتك فارغة.",
		"cart_cleared":      "تم إفراغ السلة.",
		"cart_total":        "المجموع",
		"added_to_cart":     "أضيف إلى السلة: {name} — {price}",
		"out_of_stock":      "عذراً، نفدت الكمية.",
		"categories":        "الأقسام:",
		"category_products": "منتجات {category}:",
		"category_empty":    "لا توجد منتجات في هذا القسم.",
		"no_permission":     "ليست لديك صلاحية لهذا الأمر.",
		"sync_ok":           "تمت مزامنة الكاتالوج: {n} منتج.",
		"sync_failed":       "فشلت المزامنة:",
		"report":            "تقرير ({period}): الطلبات {count} | الإيرادات {revenue}",
		"stats":             "المستخدمون: {users}\nالرسائل: {messages} (آخر 24 ساعة: {messages24h})\nالطلبات: {orders}\nاللغات: {langs}",
		"broadcast_usage":   "الاستخدام: /broadcast <النص>",
		"broadcast_queued":  "تمت جدولة الرسالة إلى {n} مستخدم.",
		"lang_pick":         "اختر لغتك:",
		"lang_set":          "تم تغيير اللغة إلى العربية.",
		"setlang_usage":     "الاستخدام: /setlang FA|EN|AR",
		"setlang_ok":        "اللغة الافتراضية الآن {lang}.",
		"broadcast_capped":  "تمت جدولة الرسالة إلى {n} مستخدم؛ تم تخطي {skipped} بسبب حد الإرسال.",
		"order_usage":       "الاستخدام: /order <رقم الطلب>",
		"order_not_found":   "الطلب #{oid} غير موجود.",
		"temp_error":        "⚠️ خطأ مؤقت. حاول مرة أخرى.",
		"cancelled":         "تم الإلغاء.",
		"support_title":     "الدعم 🛟",
		"support_tg":        "تيليجرام",
		"support_mail":      "البريد",
		"support_wa":        "واتساب",
		"support_ig":        "إنستغرام",
		"support_none":      "لا توجد وسائل تواصل مسجلة.",
	},
}
